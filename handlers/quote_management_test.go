package handlers

import (
	"errors"
	"testing"

	"gorm.io/gorm"
	"malgeunsoft.com/launchpad/models"
)

func TestStoreErrTranslatesRecordMiss(t *testing.T) {
	err := storeErr(gorm.ErrRecordNotFound, "quote abc")
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("record miss should map to models.ErrNotFound, got %v", err)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		t.Error("translated error must not leak the driver sentinel")
	}
}

func TestStoreErrPassesThroughOtherErrors(t *testing.T) {
	cause := errors.New("connection refused")
	err := storeErr(cause, "quote abc")
	if !errors.Is(err, cause) {
		t.Errorf("unrelated error must pass through, got %v", err)
	}
	if errors.Is(err, models.ErrNotFound) {
		t.Error("unrelated error must not become not-found")
	}
}
