package placeholders

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"chosenoffset.com/kizilcik/internal/assets"
	"chosenoffset.com/kizilcik/internal/config"
	"chosenoffset.com/kizilcik/internal/render"
	"chosenoffset.com/kizilcik/internal/ui/label"
)

// SpriteSize is the edge length of generated character sprites
const SpriteSize = 64

// Role picks the colour scheme of a placeholder sprite
type Role int

const (
	RolePlayer Role = iota
	RoleTarget
	RoleObstacle
	RoleBoss
)

// ColorPalette defines colors for the character roles
var ColorPalette = struct {
	Player   color.RGBA
	Target   color.RGBA
	Obstacle color.RGBA
	Boss     color.RGBA
	Letter   color.RGBA
}{
	Player:   color.RGBA{0, 200, 100, 255},  // Green
	Target:   color.RGBA{255, 170, 200, 255}, // Pink
	Obstacle: color.RGBA{120, 120, 140, 255}, // Slate
	Boss:     color.RGBA{200, 30, 30, 255},   // Red
	Letter:   color.RGBA{255, 255, 255, 255},
}

// Fill returns the body colour for a role
func (r Role) Fill() color.RGBA {
	switch r {
	case RolePlayer:
		return ColorPalette.Player
	case RoleObstacle:
		return ColorPalette.Obstacle
	case RoleBoss:
		return ColorPalette.Boss
	default:
		return ColorPalette.Target
	}
}

// CreateCharacter creates a round character sprite with the name's initial in the middle
func CreateCharacter(size int, fillColor, outlineColor color.RGBA, initial rune) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	// Make background transparent
	draw.Draw(img, img.Bounds(), &image.Uniform{color.RGBA{0, 0, 0, 0}}, image.Point{}, draw.Src)

	center := size / 2
	radius := size/2 - 2

	// Draw filled circle
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := x - center
			dy := y - center
			distSq := dx*dx + dy*dy

			if distSq <= radius*radius {
				img.Set(x, y, fillColor)
			} else if distSq <= (radius+1)*(radius+1) {
				img.Set(x, y, outlineColor)
			}
		}
	}

	drawInitial(img, initial)
	return img
}

// drawInitial writes one letter in the middle of img using the 7x13 bitmap face.
// Letters outside the face's range are left out.
func drawInitial(img *image.RGBA, initial rune) {
	face := basicfont.Face7x13
	if _, ok := face.GlyphAdvance(initial); !ok {
		return
	}
	b := img.Bounds()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(ColorPalette.Letter),
		Face: face,
		Dot:  fixed.P(b.Dx()/2-face.Width/2, b.Dy()/2+face.Ascent/2),
	}
	d.DrawString(string(initial))
}

// CharacterSprite builds the placeholder for one name
func CharacterSprite(name string, role Role) *image.RGBA {
	fill := role.Fill()
	return CreateCharacter(SpriteSize, fill, Darken(fill, 0.6), label.Initial(name))
}

// CharacterSprites returns a placeholder for every character the config names
func CharacterSprites(cfg *config.Config) map[string]*image.RGBA {
	sprites := make(map[string]*image.RGBA)
	sprites[cfg.Player.Name] = CharacterSprite(cfg.Player.Name, RolePlayer)
	for _, n := range cfg.Names.Targets {
		sprites[n] = CharacterSprite(n, RoleTarget)
	}
	for _, n := range cfg.Names.Obstacles {
		sprites[n] = CharacterSprite(n, RoleObstacle)
	}
	if cfg.Names.Boss != "" {
		sprites[cfg.Names.Boss] = CharacterSprite(cfg.Names.Boss, RoleBoss)
	}
	return sprites
}

// FillMissing gives every configured character without an image an in-memory
// placeholder. Returns how many were added.
func FillMissing(reg *assets.Registry, cfg *config.Config, loader render.ResourceLoader) int {
	var sprites map[string]*image.RGBA
	added := 0
	for _, name := range cfg.AllNames() {
		if reg.Ready(name) {
			continue
		}
		if sprites == nil {
			sprites = CharacterSprites(cfg)
		}
		reg.Add(name, loader.FromImage(sprites[name]))
		added++
	}
	return added
}

// Generate writes a placeholder PNG for every configured character into dir.
// Existing files are kept unless overwrite is set. Returns the files written.
func Generate(dir string, cfg *config.Config, overwrite bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	existing, err := assets.ScanDirectory(dir)
	if err != nil {
		return nil, err
	}

	sprites := CharacterSprites(cfg)
	var written []string
	for _, name := range cfg.AllNames() {
		if _, ok := existing[label.Key(name)]; ok && !overwrite {
			continue
		}
		path := filepath.Join(dir, assets.FileName(name))
		if err := SavePNG(sprites[name], path); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// SavePNG saves an image to a PNG file
func SavePNG(img image.Image, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// Darken returns a darker version of a color
func Darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// Lighten returns a lighter version of a color
func Lighten(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) + (255-float64(c.R))*factor),
		G: uint8(float64(c.G) + (255-float64(c.G))*factor),
		B: uint8(float64(c.B) + (255-float64(c.B))*factor),
		A: c.A,
	}
}
