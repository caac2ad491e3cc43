package filesink

import (
	"path/filepath"
	"testing"

	"github.com/herbaini/yuvpress/pkg/mocks"
	"github.com/herbaini/yuvpress/pkg/ports"
)

// testBaseDir is a platform-independent base directory for tests
var testBaseDir = filepath.Join("debug")

func TestSink_Enabled(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, fs)

	if !sink.Enabled() {
		t.Error("expected Enabled to return true")
	}
}

func TestSink_SaveSessionJSON(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, fs)

	data := []byte(`{"width": 64}`)
	err := sink.SaveSessionJSON(data)
	if err != nil {
		t.Fatalf("SaveSessionJSON failed: %v", err)
	}

	expectedPath := filepath.Join(testBaseDir, "session.json")
	saved, ok := fs.GetFile(expectedPath)
	if !ok {
		t.Errorf("expected file to be saved at %s", expectedPath)
	}
	if string(saved) != string(data) {
		t.Errorf("expected %q, got %q", data, saved)
	}
}

func TestSink_SaveRawFrame(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, fs)

	data := []byte{0x10, 0x20, 0x30}
	err := sink.SaveRawFrame(0, data)
	if err != nil {
		t.Fatalf("SaveRawFrame failed: %v", err)
	}

	expectedPath := filepath.Join(testBaseDir, "frames", "frame-000000.yuv")
	_, ok := fs.GetFile(expectedPath)
	if !ok {
		t.Errorf("expected file to be saved at %s", expectedPath)
	}
}

func TestSink_SavePacket(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, fs)

	key := ports.Packet{Kind: ports.KindFrame, Data: []byte{0xC0}, Keyframe: true}
	if err := sink.SavePacket(0, key); err != nil {
		t.Fatalf("SavePacket failed: %v", err)
	}
	delta := ports.Packet{Kind: ports.KindFrame, Data: []byte{0xC1}}
	if err := sink.SavePacket(1, delta); err != nil {
		t.Fatalf("SavePacket failed: %v", err)
	}

	keyPath := filepath.Join(testBaseDir, "packets", "packet-000000-key.bin")
	if _, ok := fs.GetFile(keyPath); !ok {
		t.Errorf("expected keyframe packet at %s", keyPath)
	}
	deltaPath := filepath.Join(testBaseDir, "packets", "packet-000001.bin")
	if _, ok := fs.GetFile(deltaPath); !ok {
		t.Errorf("expected delta packet at %s", deltaPath)
	}
}

func TestSink_MultipleRawFrames(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, fs)

	for i := 0; i < 10; i++ {
		err := sink.SaveRawFrame(i, []byte{0xFF})
		if err != nil {
			t.Fatalf("SaveRawFrame %d failed: %v", i, err)
		}
	}

	files := fs.GetAllFiles()
	if len(files) != 10 {
		t.Errorf("expected 10 files, got %d", len(files))
	}
}
