package config

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/marmos91/memvfs/pkg/content"
	"github.com/marmos91/memvfs/pkg/content/buffered"
	"github.com/marmos91/memvfs/pkg/content/device"
	"github.com/marmos91/memvfs/pkg/vfs"
)

func TestCreateContent_Buffered(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Content.Buffered["max_size"] = "1KiB"

	c, err := CreateContent(&cfg.Content)
	if err != nil {
		t.Fatalf("CreateContent failed: %v", err)
	}

	stream, ok := c.(*buffered.Stream)
	if !ok {
		t.Fatalf("Expected *buffered.Stream, got %T", c)
	}
	if stream.MaxSize() != 1024 {
		t.Errorf("Expected max size 1024, got %d", stream.MaxSize())
	}
	if !stream.Owned() {
		t.Error("Expected stream to own its in-memory store")
	}
}

func TestCreateContent_BufferedNumericSize(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Content.Buffered["max_size"] = 4096

	c, err := CreateContent(&cfg.Content)
	if err != nil {
		t.Fatalf("CreateContent failed: %v", err)
	}
	if got := c.(*buffered.Stream).MaxSize(); got != 4096 {
		t.Errorf("Expected max size 4096, got %d", got)
	}
}

func TestCreateContent_Devices(t *testing.T) {
	tests := []struct {
		kind string
		want content.Content
	}{
		{"null", &device.Null{}},
		{"zero", &device.Zero{}},
		{"full", &device.Full{}},
		{"random", &device.Random{}},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			cfg := GetDefaultConfig()
			cfg.Content.Type = tt.kind

			c, err := CreateContent(&cfg.Content)
			if err != nil {
				t.Fatalf("CreateContent(%s) failed: %v", tt.kind, err)
			}
			if gotType, wantType := fmt.Sprintf("%T", c), fmt.Sprintf("%T", tt.want); gotType != wantType {
				t.Errorf("Expected %s, got %s", wantType, gotType)
			}
		})
	}
}

func TestCreateContent_SeededRandom(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Content.Type = "random"
	cfg.Content.Random["seed"] = 42

	c, err := CreateContent(&cfg.Content)
	if err != nil {
		t.Fatalf("CreateContent failed: %v", err)
	}

	got, err := c.Read(32)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	want, err := device.NewRandom(device.WithSeed(42)).Read(32)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Error("Expected seeded random device to be deterministic")
	}
}

func TestCreateContent_UnknownType(t *testing.T) {
	cfg := &ContentConfig{Type: "tape"}

	_, err := CreateContent(cfg)
	if !errors.Is(err, content.ErrNotSupported) {
		t.Fatalf("Expected ErrNotSupported, got %v", err)
	}
}

func TestNewFile_UsesConfig(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Content.Type = "zero"
	cfg.Naming.Blacklist = append(cfg.Naming.Blacklist, "*")

	f, err := NewFile(cfg, "zeros", nil)
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	if _, ok := f.Content().(*device.Zero); !ok {
		t.Errorf("Expected zero device, got %T", f.Content())
	}

	if _, err := NewFile(cfg, "bad*name", nil); !errors.Is(err, vfs.ErrInvalidName) {
		t.Errorf("Expected ErrInvalidName, got %v", err)
	}
}
