// split_sprites cuts a 2x2 sprite sheet into one PNG per emotion for a
// character, written to assets/characters/.
// Usage: go run scripts/split_sprites.go <character> <sheet.png>
// Output: <character>_neutral.png (top-left), <character>_happy.png (top-right),
// <character>_surprised.png (bottom-left), <character>_shy.png (bottom-right)
package main

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	emotions  = []string{"neutral", "happy", "surprised", "shy"}
	validName = regexp.MustCompile(`^[a-z0-9_-]+$`)
)

func main() {
	code := run()
	if code != 0 {
		os.Exit(code)
	}
}

func run() int {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: go run scripts/split_sprites.go <character> <sheet.png>\n")
		return 1
	}
	name := strings.ToLower(os.Args[1])
	if !validName.MatchString(name) {
		fmt.Fprintf(os.Stderr, "character name %q must be lowercase letters, digits, _ or -\n", os.Args[1])
		return 1
	}
	inPath := filepath.Clean(os.Args[2])
	if strings.Contains(inPath, "..") {
		fmt.Fprintf(os.Stderr, "path must not escape current directory\n")
		return 1
	}
	f, err := os.Open(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open %s: %v\n", inPath, err)
		return 1
	}
	defer func() {
		if cErr := f.Close(); cErr != nil {
			fmt.Fprintf(os.Stderr, "close input: %v\n", cErr)
		}
	}()
	img, _, err := image.Decode(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "decode: %v\n", err)
		return 1
	}

	b := img.Bounds()
	halfW, halfH := b.Dx()/2, b.Dy()/2
	cells := []image.Rectangle{
		image.Rect(b.Min.X, b.Min.Y, b.Min.X+halfW, b.Min.Y+halfH),
		image.Rect(b.Min.X+halfW, b.Min.Y, b.Max.X, b.Min.Y+halfH),
		image.Rect(b.Min.X, b.Min.Y+halfH, b.Min.X+halfW, b.Max.Y),
		image.Rect(b.Min.X+halfW, b.Min.Y+halfH, b.Max.X, b.Max.Y),
	}

	outDir := filepath.Join("assets", "characters")
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir %s: %v\n", outDir, err)
		return 1
	}
	for i, r := range cells {
		outPath := filepath.Join(outDir, name+"_"+emotions[i]+".png")
		if err := writeCell(img, r, outPath); err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", outPath, err)
			return 1
		}
		fmt.Println(outPath)
	}
	return 0
}

func writeCell(img image.Image, r image.Rectangle, path string) (err error) {
	dst := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), img, r.Min, draw.Src)

	f, err := os.Create(path) // #nosec G304 -- path is assets/characters/<validated name>
	if err != nil {
		return err
	}
	defer func() {
		if cErr := f.Close(); cErr != nil && err == nil {
			err = cErr
		}
	}()
	return png.Encode(f, dst)
}
