// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSaveLogo(t *testing.T) {
	dir := t.TempDir()
	p := NewLogoProcessor(dir)

	relPath, err := p.Save(bytes.NewReader(pngBytes(t, 64, 64)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(relPath, "logo"+string(filepath.Separator)))
	assert.True(t, strings.HasSuffix(relPath, ".png"))

	data, err := os.ReadFile(filepath.Join(dir, relPath))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
}

func TestSaveLogo_ResizesLargeImages(t *testing.T) {
	dir := t.TempDir()
	p := NewLogoProcessor(dir)

	relPath, err := p.Save(bytes.NewReader(pngBytes(t, 1024, 2048)))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, relPath))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.LessOrEqual(t, img.Bounds().Dx(), logoMaxDim)
	assert.LessOrEqual(t, img.Bounds().Dy(), logoMaxDim)
}

func TestSaveLogo_RejectsNonImages(t *testing.T) {
	p := NewLogoProcessor(t.TempDir())

	_, err := p.Save(strings.NewReader("#!/bin/sh\necho not an image\n"))
	assert.Error(t, err)
}
