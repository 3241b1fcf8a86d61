package gamedata

import "image"

// Sprites are the static images drawn by the UI.
type Sprites struct {
	Portrait image.Image // Overview screen, 48x48
	Hero     image.Image // Battle screen, 40x40
	Enemy    image.Image // Battle screen, 40x40
}

// LoadSprites decodes the embedded sprite sheet.
func LoadSprites() (Sprites, error) {
	var s Sprites
	for _, sprite := range []struct {
		file string
		dst  *image.Image
	}{
		{"sprites/portrait.png", &s.Portrait},
		{"sprites/hero.png", &s.Hero},
		{"sprites/enemy.png", &s.Enemy},
	} {
		img, err := LoadImage(sprite.file)
		if err != nil {
			return Sprites{}, err
		}
		*sprite.dst = img
	}
	return s, nil
}
