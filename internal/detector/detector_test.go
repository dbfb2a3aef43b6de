package detector

import "testing"

func TestDetectISO_English(t *testing.T) {
	d := New()

	code, ok := d.DetectISO("The quick brown fox jumps over the lazy dog near the river bank.")
	if !ok {
		t.Fatal("expected detection to succeed")
	}
	if code != "EN" {
		t.Errorf("expected EN, got %s", code)
	}
}

func TestDetectISO_Russian(t *testing.T) {
	d := New()

	code, ok := d.DetectISO("Быстрая коричневая лиса перепрыгивает через ленивую собаку у реки.")
	if !ok {
		t.Fatal("expected detection to succeed")
	}
	if code != "RU" {
		t.Errorf("expected RU, got %s", code)
	}
}

func TestDetect_EmptyText(t *testing.T) {
	d := New()

	if _, ok := d.Detect(""); ok {
		t.Error("expected detection to fail for empty text")
	}
}
