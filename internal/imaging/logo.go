// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging processes the uploaded site logo using pure Go libraries.
package imaging

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/smartwarga/smartwarga-go/internal/util"
)

// maxLogoBytes caps an uploaded logo at 5 MB before decoding.
const maxLogoBytes = 5 << 20

// logoMaxDim is the bounding box the logo is fit into.
const logoMaxDim = 512

// LogoProcessor stores uploaded logos under the uploads directory.
type LogoProcessor struct {
	uploadsDir string
}

// NewLogoProcessor creates a logo processor rooted at uploadsDir.
func NewLogoProcessor(uploadsDir string) *LogoProcessor {
	return &LogoProcessor{uploadsDir: uploadsDir}
}

// Save reads an uploaded image, fits it within the logo bounding box, and
// writes it as PNG under logo/<uuid>.png. It returns the path relative to
// the uploads directory.
func (p *LogoProcessor) Save(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxLogoBytes+1))
	if err != nil {
		return "", fmt.Errorf("read logo: %w", err)
	}
	if len(data) > maxLogoBytes {
		return "", fmt.Errorf("logo exceeds %d bytes", maxLogoBytes)
	}
	if !isSupportedImage(data) {
		return "", fmt.Errorf("unsupported logo format")
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode logo: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > logoMaxDim || bounds.Dy() > logoMaxDim {
		img = imaging.Fit(img, logoMaxDim, logoMaxDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode logo: %w", err)
	}

	relPath := filepath.Join("logo", uuid.NewString()+".png")
	fullPath, err := util.SafeJoinPath(p.uploadsDir, relPath)
	if err != nil {
		return "", fmt.Errorf("resolve logo path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("create logo directory: %w", err)
	}
	if err := os.WriteFile(fullPath, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write logo: %w", err)
	}
	return relPath, nil
}

// isSupportedImage sniffs the content type. TIFF is rejected explicitly
// (CVE-2023-36308 in disintegration/imaging).
func isSupportedImage(data []byte) bool {
	contentType := http.DetectContentType(data)
	if strings.Contains(contentType, "tiff") {
		return false
	}
	return strings.Contains(contentType, "jpeg") ||
		strings.Contains(contentType, "png") ||
		strings.Contains(contentType, "gif")
}
