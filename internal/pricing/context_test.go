package pricing

import (
	"testing"

	"github.com/tecbunny/storefront/pkg/enums"
)

func ptrCategory(c enums.CustomerCategory) *enums.CustomerCategory { return &c }
func ptrTier(t enums.B2BTier) *enums.B2BTier                       { return &t }

func TestResolveCustomerContextNilProfile(t *testing.T) {
	ctx := ResolveCustomerContext(nil)
	if !ctx.B2C || ctx.Category != enums.CustomerCategoryNormal {
		t.Fatalf("expected default B2C Normal, got %+v", ctx)
	}
}

func TestResolveCustomerContextVerifiedB2B(t *testing.T) {
	ctx := ResolveCustomerContext(&CustomerProfile{
		CustomerType: enums.CustomerTypeB2B,
		B2BTier:      ptrTier(enums.B2BTierGold),
		GSTVerified:  true,
	})
	if ctx.B2C {
		t.Fatal("expected B2B context")
	}
	if ctx.Tier != enums.B2BTierGold {
		t.Fatalf("expected Gold tier, got %s", ctx.Tier)
	}
}

func TestResolveCustomerContextUnverifiedB2BFallsBackToRetail(t *testing.T) {
	ctx := ResolveCustomerContext(&CustomerProfile{
		CustomerType:     enums.CustomerTypeB2B,
		B2BTier:          ptrTier(enums.B2BTierGold),
		CustomerCategory: ptrCategory(enums.CustomerCategoryPremium),
		GSTVerified:      false,
	})
	if !ctx.B2C {
		t.Fatal("unverified account must never receive B2B pricing")
	}
	if ctx.Category != enums.CustomerCategoryPremium {
		t.Fatalf("expected stored retail category, got %s", ctx.Category)
	}
}

func TestResolveCustomerContextDefaultsTierToBronze(t *testing.T) {
	ctx := ResolveCustomerContext(&CustomerProfile{
		CustomerType: enums.CustomerTypeB2B,
		GSTVerified:  true,
	})
	if ctx.B2C || ctx.Tier != enums.B2BTierBronze {
		t.Fatalf("expected Bronze default, got %+v", ctx)
	}
}

func TestResolveCustomerContextDefaultsCategoryToNormal(t *testing.T) {
	ctx := ResolveCustomerContext(&CustomerProfile{CustomerType: enums.CustomerTypeB2C})
	if !ctx.B2C || ctx.Category != enums.CustomerCategoryNormal {
		t.Fatalf("expected Normal default, got %+v", ctx)
	}
}
