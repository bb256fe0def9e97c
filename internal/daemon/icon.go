package daemon

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"runtime"
)

const iconSize = 16

// trayIcon draws a small calendar page: a red header bar over a white sheet
// with the weekend columns shaded. Windows wants ICO, everything else PNG.
func trayIcon() []byte {
	data := iconPNG()
	if runtime.GOOS == "windows" {
		return wrapICO(data)
	}
	return data
}

func iconPNG() []byte {
	img := image.NewNRGBA(image.Rect(0, 0, iconSize, iconSize))

	header := color.NRGBA{R: 0xd9, G: 0x3f, B: 0x3f, A: 0xff}
	sheet := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	weekend := color.NRGBA{R: 0xc8, G: 0xc8, B: 0xd8, A: 0xff}
	border := color.NRGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff}

	for y := 1; y < iconSize-1; y++ {
		for x := 1; x < iconSize-1; x++ {
			c := sheet
			switch {
			case y < 5:
				c = header
			case x < 3 || x > iconSize-4:
				c = weekend
			}
			if x == 1 || y == 1 || x == iconSize-2 || y == iconSize-2 {
				c = border
			}
			img.SetNRGBA(x, y, c)
		}
	}

	var buf bytes.Buffer
	// encoding an in-memory NRGBA cannot fail
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// wrapICO embeds a PNG in a single-image ICO container
func wrapICO(pngData []byte) []byte {
	var buf bytes.Buffer

	// ICONDIR
	binary.Write(&buf, binary.LittleEndian, uint16(0)) // reserved
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // type: icon
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // count

	// ICONDIRENTRY
	buf.WriteByte(iconSize)
	buf.WriteByte(iconSize)
	buf.WriteByte(0) // palette
	buf.WriteByte(0) // reserved
	binary.Write(&buf, binary.LittleEndian, uint16(1))  // planes
	binary.Write(&buf, binary.LittleEndian, uint16(32)) // bpp
	binary.Write(&buf, binary.LittleEndian, uint32(len(pngData)))
	binary.Write(&buf, binary.LittleEndian, uint32(6+16)) // offset

	buf.Write(pngData)
	return buf.Bytes()
}
