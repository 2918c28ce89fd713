package assets

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// IconSizes are the square sizes handed to the window system.
var IconSizes = []int{16, 32, 48, 64}

// GenerateIcon draws a tiny court: two paddles and a ball on black.
func GenerateIcon(size int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	white := image.NewUniform(color.White)
	unit := max(size/16, 1)
	paddleH := 6 * unit
	top := (size - paddleH) / 2

	left := image.Rect(unit, top, 2*unit, top+paddleH)
	right := image.Rect(size-2*unit, top, size-unit, top+paddleH)
	ball := image.Rect(size/2-unit, size/2-unit, size/2+unit, size/2+unit)
	for _, r := range []image.Rectangle{left, right, ball} {
		draw.Draw(img, r, white, image.Point{}, draw.Src)
	}
	return img
}

// Icons scales src to every size in IconSizes.
func Icons(src image.Image) []image.Image {
	icons := make([]image.Image, 0, len(IconSizes))
	for _, size := range IconSizes {
		dst := image.NewRGBA(image.Rect(0, 0, size, size))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
		icons = append(icons, dst)
	}
	return icons
}
