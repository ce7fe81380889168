package auth

import (
	"testing"
	"time"
)

func TestRole_AtLeast(t *testing.T) {
	if !RoleAdmin.AtLeast(RoleWriter) {
		t.Fatalf("admin should satisfy writer")
	}
	if !RoleSEO.AtLeast(RoleSEO) {
		t.Fatalf("seo should satisfy seo")
	}
	if RoleWriter.AtLeast(RoleSEO) {
		t.Fatalf("writer must not satisfy seo")
	}
	if Role("bogus").AtLeast(RoleWriter) {
		t.Fatalf("unknown role must not satisfy anything")
	}
}

func TestSession_Expired(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	if (Session{ExpiresAt: now.Add(time.Hour)}).Expired(now) {
		t.Fatalf("did not expect expiry")
	}
	if !(Session{ExpiresAt: now.Add(-time.Hour)}).Expired(now) {
		t.Fatalf("expected expiry")
	}
	if (Session{}).Expired(now) {
		t.Fatalf("zero expiry means no expiry")
	}
}
