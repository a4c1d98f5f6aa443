package content

import "embed"

// AchievementsFS holds one markdown file per achievement definition.
//
//go:embed achievements/*.md
var AchievementsFS embed.FS
