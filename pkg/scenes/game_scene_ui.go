package scenes

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/devfernandoa/HexKillerGame/pkg/components"
	"github.com/devfernandoa/HexKillerGame/pkg/config"
	"github.com/devfernandoa/HexKillerGame/pkg/ecs"
	"github.com/devfernandoa/HexKillerGame/pkg/utils"
)

// drawWorld 绘制场地与实体
func (s *GameScene) drawWorld(screen *ebiten.Image) {
	em := s.session.EntityManager()
	cam := s.camera

	// 网格
	b := s.session.Config().Arena.Bounds
	for x := math.Ceil(b.MinX); x <= b.MaxX; x += 2 {
		x0, y0 := cam.WorldToScreen(x, b.MinY)
		x1, y1 := cam.WorldToScreen(x, b.MaxY)
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, colorGrid, false)
	}
	for y := math.Ceil(b.MinY); y <= b.MaxY; y += 2 {
		x0, y0 := cam.WorldToScreen(b.MinX, y)
		x1, y1 := cam.WorldToScreen(b.MaxX, y)
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, colorGrid, false)
	}

	for _, id := range em.EntitiesOfKind(ecs.KindWall) {
		wall, _ := ecs.GetComponent[*components.WallComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		if wall == nil || pos == nil {
			continue
		}
		x, y := cam.WorldToScreen(pos.X-wall.Width/2, pos.Y+wall.Height/2)
		vector.DrawFilledRect(screen, x, y, cam.Pixels(wall.Width), cam.Pixels(wall.Height), colorWall, false)
	}

	for _, id := range em.EntitiesOfKind(ecs.KindCollectable) {
		s.drawCircle(screen, id, colorCollectable)
	}

	for _, id := range em.EntitiesOfKind(ecs.KindEnemy) {
		enemy, ok := ecs.GetComponent[*components.EnemyComponent](em, id)
		if !ok {
			continue
		}
		clr := colorEnemy
		if enemy.HitFlash {
			clr = colorHitFlash
		}
		s.drawCircle(screen, id, withAlpha(clr, enemy.Alpha()))
	}

	for _, id := range em.EntitiesOfKind(ecs.KindProjectile) {
		s.drawCircle(screen, id, colorProjectile)
	}

	if id, ok := em.FirstOfKind(ecs.KindPlayer); ok {
		clr := colorPlayer
		if p, ok := s.session.Player(); ok && p.Dashing {
			clr = colorText
		}
		s.drawCircle(screen, id, clr)
	}
}

func (s *GameScene) drawCircle(screen *ebiten.Image, id ecs.EntityID, clr color.RGBA) {
	em := s.session.EntityManager()
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		return
	}
	radius := 0.25
	if col, ok := ecs.GetComponent[*components.CollisionComponent](em, id); ok {
		radius = col.Radius
	}
	x, y := s.camera.WorldToScreen(pos.X, pos.Y)
	vector.DrawFilledCircle(screen, x, y, s.camera.Pixels(radius), clr, true)
}

// drawHUD 得分、时间、等级进度、冲刺状态
func (s *GameScene) drawHUD(screen *ebiten.Image) {
	tracker := s.session.Tracker()

	drawText(screen, fmt.Sprintf("SCORE %d", s.session.Score()), 16, 12, colorText)
	drawText(screen, fmt.Sprintf("TIME  %ds", int(math.Round(tracker.GlobalTimer()))), 16, 30, colorText)
	drawText(screen, fmt.Sprintf("LEVEL %d", tracker.Level()), 16, 48, colorText)

	// 升级进度条
	const barX, barY, barW, barH = 120, 52, 200, 8
	vector.DrawFilledRect(screen, barX, barY, barW, barH, colorGrid, false)
	vector.DrawFilledRect(screen, barX, barY, float32(barW*tracker.Progress()), barH, colorPlayer, false)

	if p, ok := s.session.Player(); ok && p.DashUnlocked {
		label, clr := "DASH ready", colorText
		if !p.DashReady {
			label, clr = "DASH ...", colorDim
		}
		drawText(screen, label, 16, 66, clr)
	}
}

// drawLevelUp 升级选项面板，从下方弹出
func (s *GameScene) drawLevelUp(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, ScreenWidth, ScreenHeight, colorOverlay, false)

	offers := s.session.Tracker().PendingOffers()
	t := utils.EaseOutCubic(utils.Clamp01(s.panelTime / levelPanelDuration))
	offsetY := float32((1 - t) * ScreenHeight / 2)

	const cardW, cardH, gap = 260, 150, 30
	total := float32(len(offers))*cardW + float32(len(offers)-1)*gap
	startX := (ScreenWidth - total) / 2
	y := float32(ScreenHeight-cardH)/2 + offsetY

	drawTextCentered(screen, fmt.Sprintf("LEVEL %d - choose a power-up", s.session.Tracker().Level()), ScreenWidth/2, float64(y)-40, colorText)

	for i, p := range offers {
		x := startX + float32(i)*(cardW+gap)
		border := colorDim
		if p.Rarity == config.RarityRare {
			border = colorRare
		}
		drawPanel(screen, x, y, cardW, cardH, border)
		drawText(screen, fmt.Sprintf("[%d] %s", i+1, p.Name), float64(x)+14, float64(y)+14, colorText)
		drawText(screen, string(p.Rarity), float64(x)+14, float64(y)+32, border)
		for j, line := range wrapText(p.Description, 34) {
			drawText(screen, line, float64(x)+14, float64(y)+60+float64(j)*16, colorDim)
		}
	}
}

// drawGameOver 结算、名字输入与排行榜
func (s *GameScene) drawGameOver(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, ScreenWidth, ScreenHeight, colorOverlay, false)

	const panelW, panelH = 420, 420
	x := float32(ScreenWidth-panelW) / 2
	y := float32(ScreenHeight-panelH) / 2
	drawPanel(screen, x, y, panelW, panelH, colorEnemy)

	cx := float64(ScreenWidth) / 2
	top := float64(y)
	result := s.session.Result()
	drawTextCentered(screen, "GAME OVER", cx, top+20, colorEnemy)
	drawTextCentered(screen, fmt.Sprintf("Score: %d", result.Score), cx, top+50, colorText)
	drawTextCentered(screen, fmt.Sprintf("Survival Time: %ds", int(math.Round(result.SurvivalTime))), cx, top+68, colorText)

	drawTextCentered(screen, fmt.Sprintf("name: %s_", s.name.String()), cx, top+100, colorText)

	if s.board == nil {
		drawTextCentered(screen, "high scores unavailable", cx, top+130, colorDim)
	} else {
		status := "[ENTER] save"
		switch {
		case s.board.Saving():
			status = "saving..."
		case !s.board.SaveEnabled():
			status = "saved"
		case s.board.Err() != nil:
			status = "save failed, [ENTER] to retry"
		}
		drawTextCentered(screen, status, cx, top+120, colorDim)

		drawTextCentered(screen, "High Scores:", cx, top+150, colorText)
		for i, e := range s.board.Entries() {
			if i >= 10 {
				break
			}
			drawTextCentered(screen, fmt.Sprintf("%d. %s - %d", i+1, e.Name, e.Score), cx, top+170+float64(i)*16, colorDim)
		}
	}

	drawTextCentered(screen, "[F5] restart    [ESC] menu", cx, top+panelH-30, colorDim)
}

// wrapText 按单词把文本折成不超过 width 个字符的行
func wrapText(s string, width int) []string {
	var lines []string
	line := ""
	word := ""
	flush := func() {
		if word == "" {
			return
		}
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
		word = ""
	}
	for _, r := range s {
		if r == ' ' || r == '\n' {
			flush()
			continue
		}
		word += string(r)
	}
	flush()
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
