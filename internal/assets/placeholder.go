package assets

import (
	"hash/fnv"
	"image"
	"image/color"
)

// Placeholder palette.
var (
	pixelBlack = color.RGBA{0x18, 0x14, 0x28, 255}
	pixelSky   = color.RGBA{0x45, 0x2c, 0x5c, 255}
	pixelWater = color.RGBA{0x2d, 0x3a, 0x5c, 255}
	pixelSand  = color.RGBA{0x8b, 0x73, 0x55, 255}
	pixelStone = color.RGBA{0x55, 0x55, 0x66, 255}
	pixelGreen = color.RGBA{0x2d, 0x5a, 0x3d, 255}
	pixelWarm  = color.RGBA{0xc4, 0x6c, 0x32, 255}
	pixelSkin  = color.RGBA{0xe0, 0xb8, 0x98, 255}
)

const blockPx = 8

// Placeholder sizes in pixels.
const (
	BackgroundW, BackgroundH = 256, 144
	SpriteW, SpriteH         = 64, 128
)

var grounds = []color.RGBA{pixelGreen, pixelSand, pixelStone, pixelWater}

func fillBlock(img *image.RGBA, bx, by int, clr color.RGBA) {
	b := img.Bounds()
	for dy := 0; dy < blockPx; dy++ {
		for dx := 0; dx < blockPx; dx++ {
			x, y := bx*blockPx+dx, by*blockPx+dy
			if x < b.Dx() && y < b.Dy() {
				img.SetRGBA(x, y, clr)
			}
		}
	}
}

func seed(ref string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(ref))
	return h.Sum32()
}

// PlaceholderBackground draws a blocky sky-and-ground image for a missing
// background. The same ref always gives the same image.
func PlaceholderBackground(ref string) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, BackgroundW, BackgroundH))
	bw, bh := BackgroundW/blockPx, BackgroundH/blockPx
	s := seed(ref)
	horizon := bh/3 + int(s%uint32(bh/3))
	ground := grounds[int(s>>8)%len(grounds)]

	for by := 0; by < bh; by++ {
		for bx := 0; bx < bw; bx++ {
			clr := pixelSky
			if by >= horizon {
				clr = ground
			}
			fillBlock(img, bx, by, clr)
		}
	}
	// a few buildings or trees on the horizon
	n := 2 + int(s>>16)%4
	for i := 0; i < n; i++ {
		bx := 2 + i*(bw-4)/n
		height := 2 + int(s>>(i+4))%4
		for by := horizon - height; by < horizon; by++ {
			if by < 0 {
				continue
			}
			fillBlock(img, bx, by, pixelBlack)
			fillBlock(img, bx+1, by, pixelBlack)
		}
		if horizon-height-1 >= 0 {
			fillBlock(img, bx, horizon-height-1, pixelWarm)
		}
	}
	return img
}

// PlaceholderSprite draws a plain silhouette for a missing character sprite.
// Hue varies with ref so characters stay distinguishable.
func PlaceholderSprite(ref string) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, SpriteW, SpriteH))
	s := seed(ref)
	body := color.RGBA{uint8(0x40 + s%0x80), uint8(0x40 + (s>>8)%0x80), uint8(0x40 + (s>>16)%0x80), 255}
	bw, bh := SpriteW/blockPx, SpriteH/blockPx

	// head
	for by := 1; by < 4; by++ {
		for bx := bw/2 - 1; bx <= bw/2; bx++ {
			fillBlock(img, bx, by, pixelSkin)
		}
	}
	// torso widening toward the bottom
	for by := 4; by < bh; by++ {
		half := 1 + (by-4)/3
		for bx := bw/2 - 1 - half; bx <= bw/2+half; bx++ {
			if bx >= 0 && bx < bw {
				fillBlock(img, bx, by, body)
			}
		}
	}
	return img
}
