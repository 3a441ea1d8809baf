package loader

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func writeTestPLY(t *testing.T, rows [][3]float32) string {
	t.Helper()
	var header bytes.Buffer
	header.WriteString("ply\n")
	header.WriteString("format binary_little_endian 1.0\n")
	header.WriteString("comment generated by a test\n")
	header.WriteString("element vertex " + strconv.Itoa(len(rows)) + "\n")
	header.WriteString("property float x\n")
	header.WriteString("property float y\n")
	header.WriteString("property float z\n")
	header.WriteString("end_header\n")

	var body bytes.Buffer
	for _, r := range rows {
		for _, v := range r {
			var buf [4]byte
			binary.LittleEndian.PutUint32(buf[:], math.Float32bits(v))
			body.Write(buf[:])
		}
	}

	path := filepath.Join(t.TempDir(), "scene.ply")
	full := append(header.Bytes(), body.Bytes()...)
	if err := os.WriteFile(path, full, 0o644); err != nil {
		t.Fatalf("os.WriteFile() error = %v", err)
	}
	return path
}

func TestOpenPLYReadsProperties(t *testing.T) {
	path := writeTestPLY(t, [][3]float32{{1, 2, 3}, {4, 5, 6}})
	src, err := OpenPLY(path)
	if err != nil {
		t.Fatalf("OpenPLY() error = %v", err)
	}
	if src.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", src.Count())
	}

	x, err := src.PropertyF32("x")
	if err != nil {
		t.Fatalf("PropertyF32(x) error = %v", err)
	}
	if x[0] != 1 || x[1] != 4 {
		t.Errorf("PropertyF32(x) = %v, want [1 4]", x)
	}

	z, err := src.PropertyF32("z")
	if err != nil {
		t.Fatalf("PropertyF32(z) error = %v", err)
	}
	if z[0] != 3 || z[1] != 6 {
		t.Errorf("PropertyF32(z) = %v, want [3 6]", z)
	}
}

func TestOpenPLYMissingProperty(t *testing.T) {
	path := writeTestPLY(t, [][3]float32{{1, 2, 3}})
	src, err := OpenPLY(path)
	if err != nil {
		t.Fatalf("OpenPLY() error = %v", err)
	}
	_, err = src.PropertyF32("opacity")
	if !errors.Is(err, ErrMissingProperty) {
		t.Errorf("PropertyF32(opacity) error = %v, want ErrMissingProperty", err)
	}
}

func TestOpenPLYRejectsASCIIFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ascii.ply")
	content := "ply\nformat ascii 1.0\nelement vertex 0\nend_header\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("os.WriteFile() error = %v", err)
	}
	if _, err := OpenPLY(path); err == nil {
		t.Errorf("OpenPLY() on an ASCII file should fail")
	}
}
