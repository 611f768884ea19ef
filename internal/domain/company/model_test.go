package company_test

import (
	"testing"

	"bafs/internal/domain/company"
)

// TestCompany_Validate tests validation of Company.
func TestCompany_Validate(t *testing.T) {
	tests := []struct {
		name    string
		company company.Company
		wantErr bool
	}{
		{
			name:    "valid company",
			company: company.Company{ID: "c-1", Name: "Golden Dragon Trading", ChairmanID: "s23001", Assets: company.SeedCapital},
			wantErr: false,
		},
		{
			name:    "blank name",
			company: company.Company{ID: "c-2", Name: "   ", ChairmanID: "s23001", Assets: company.SeedCapital},
			wantErr: true,
		},
		{
			name:    "missing chairman",
			company: company.Company{ID: "c-3", Name: "Golden Dragon Trading", Assets: company.SeedCapital},
			wantErr: true,
		},
		{
			name:    "negative assets",
			company: company.Company{ID: "c-4", Name: "Golden Dragon Trading", ChairmanID: "s23001", Assets: -5},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.company.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestCompany_Credit tests pooled balance crediting.
func TestCompany_Credit(t *testing.T) {
	c := company.Company{ID: "c-1", Name: "X", ChairmanID: "s1", Assets: company.SeedCapital}

	if err := c.Credit(500); err != nil {
		t.Fatalf("Credit failed: %v", err)
	}
	if c.Assets != company.SeedCapital+500 {
		t.Errorf("Assets = %d, want %d", c.Assets, company.SeedCapital+500)
	}
	if err := c.Credit(-10); err != company.ErrNegativeCredit {
		t.Errorf("expected ErrNegativeCredit, got %v", err)
	}
}
