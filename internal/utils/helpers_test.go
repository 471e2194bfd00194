package utils

import (
	"testing"

	"github.com/talentlink/marketplace-service/internal/models"
)

func TestParseLimitOffset(t *testing.T) {
	tests := []struct {
		name       string
		limitStr   string
		offsetStr  string
		wantLimit  int
		wantOffset int
		wantErr    bool
	}{
		{"defaults", "", "", 5, 0, false},
		{"explicit values", "10", "20", 10, 20, false},
		{"max limit", "50", "", 50, 0, false},
		{"limit too large", "51", "", 0, 0, true},
		{"zero limit", "0", "", 0, 0, true},
		{"negative limit", "-1", "", 0, 0, true},
		{"limit not a number", "abc", "", 0, 0, true},
		{"negative offset", "10", "-5", 0, 0, true},
		{"offset not a number", "10", "xyz", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset, err := ParseLimitOffset(tt.limitStr, tt.offsetStr)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected an error, got limit=%d offset=%d", limit, offset)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if limit != tt.wantLimit || offset != tt.wantOffset {
				t.Errorf("got limit=%d offset=%d, want limit=%d offset=%d", limit, offset, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestContainsContract(t *testing.T) {
	transitions := []models.ContractStatus{models.CompletedContract, models.CancelledContract}

	if !ContainsContract(transitions, models.CompletedContract) {
		t.Errorf("expected %s to be a valid transition", models.CompletedContract)
	}
	if ContainsContract(transitions, models.ActiveContract) {
		t.Errorf("expected %s to be an invalid transition", models.ActiveContract)
	}
	if ContainsContract(nil, models.CompletedContract) {
		t.Errorf("empty transition list must not allow any status")
	}
}
