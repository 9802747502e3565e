package auth

import (
	"testing"
	"time"

	"github.com/tpdocs/tpdocs/internal/model"
)

func testIssuer() *TokenIssuer {
	return NewTokenIssuer("test-secret", "tpdocs-test", time.Hour)
}

func TestTokenIssuer_MintAndVerify(t *testing.T) {
	t.Parallel()

	issuer := testIssuer()
	user := &model.User{
		ID:    "01HV2W0J8N0000000000000000",
		EMail: "tpUser@localhost.com",
		Roles: []string{"x", "tp", "y"},
	}

	raw, err := issuer.Mint(user)
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	authCtx, err := issuer.Verify(raw)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if authCtx.EMail != user.EMail {
		t.Errorf("EMail = %s, want %s", authCtx.EMail, user.EMail)
	}
	if authCtx.UserID != user.ID {
		t.Errorf("UserID = %s, want %s", authCtx.UserID, user.ID)
	}
	if len(authCtx.Roles) != 3 || authCtx.Roles[1] != "tp" {
		t.Errorf("Roles = %v, want [x tp y]", authCtx.Roles)
	}
}

func TestTokenIssuer_VerifyRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	raw, err := testIssuer().Mint(&model.User{EMail: "a@b.co"})
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	other := NewTokenIssuer("other-secret", "tpdocs-test", time.Hour)
	if _, err := other.Verify(raw); err == nil {
		t.Error("token signed with a different secret should not verify")
	}
}

func TestTokenIssuer_VerifyRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	minting := NewTokenIssuer("test-secret", "someone-else", time.Hour)
	raw, err := minting.Mint(&model.User{EMail: "a@b.co"})
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	if _, err := testIssuer().Verify(raw); err == nil {
		t.Error("token from a different issuer should not verify")
	}
}

func TestTokenIssuer_VerifyRejectsExpired(t *testing.T) {
	t.Parallel()

	expired := NewTokenIssuer("test-secret", "tpdocs-test", -time.Minute)
	raw, err := expired.Mint(&model.User{EMail: "a@b.co"})
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	if _, err := testIssuer().Verify(raw); err == nil {
		t.Error("expired token should not verify")
	}
}

func TestTokenIssuer_VerifyRejectsGarbage(t *testing.T) {
	t.Parallel()

	if _, err := testIssuer().Verify("not.a.token"); err == nil {
		t.Error("garbage token should not verify")
	}
}

func TestTokenIssuer_EmptyRolesClaim(t *testing.T) {
	t.Parallel()

	issuer := testIssuer()
	raw, err := issuer.Mint(&model.User{EMail: "a@b.co", Roles: nil})
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	authCtx, err := issuer.Verify(raw)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if authCtx.Roles == nil {
		t.Error("Roles should default to an empty set, not nil")
	}
}
