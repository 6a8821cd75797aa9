package scenes

import (
	"github.com/devfernandoa/HexKillerGame/pkg/game"
)

// Scene 是 game.Scene 的别名
type Scene = game.Scene
