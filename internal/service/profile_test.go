package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type mockProfileRepo struct {
	DisplayNameFunc   func(ctx context.Context, userID string) (string, bool, error)
	EnsureProfileFunc func(ctx context.Context, userID, displayName string) error
}

func (m *mockProfileRepo) DisplayName(ctx context.Context, userID string) (string, bool, error) {
	return m.DisplayNameFunc(ctx, userID)
}
func (m *mockProfileRepo) EnsureProfile(ctx context.Context, userID, displayName string) error {
	return m.EnsureProfileFunc(ctx, userID, displayName)
}

func TestDisplayName_FromProfile(t *testing.T) {
	repo := &mockProfileRepo{
		DisplayNameFunc: func(ctx context.Context, userID string) (string, bool, error) {
			if userID != "bob" {
				t.Errorf("DisplayName received userID = %q; want %q", userID, "bob")
			}
			return "Bobby", true, nil
		},
	}
	svc := NewProfileService(repo, nil)

	if got := svc.DisplayName(context.Background(), "bob", "bob@example.com"); got != "Bobby" {
		t.Errorf("DisplayName = %q; want %q", got, "Bobby")
	}
}

func TestDisplayName_CreatesProfileFromEmail(t *testing.T) {
	created := ""
	repo := &mockProfileRepo{
		DisplayNameFunc: func(context.Context, string) (string, bool, error) {
			return "", false, nil
		},
		EnsureProfileFunc: func(ctx context.Context, userID, displayName string) error {
			created = displayName
			return nil
		},
	}
	svc := NewProfileService(repo, nil)

	got := svc.DisplayName(context.Background(), "carol", "carol@example.com")
	if got != "carol" || created != "carol" {
		t.Errorf("DisplayName = %q, created %q; want carol", got, created)
	}
}

func TestDisplayName_EmptyProfileName(t *testing.T) {
	repo := &mockProfileRepo{
		DisplayNameFunc: func(context.Context, string) (string, bool, error) {
			return " ", true, nil
		},
		EnsureProfileFunc: func(context.Context, string, string) error {
			t.Fatal("EnsureProfile must not be called when a profile exists")
			return nil
		},
	}
	svc := NewProfileService(repo, nil)

	if got := svc.DisplayName(context.Background(), "dave", ""); got != FallbackDisplayName {
		t.Errorf("DisplayName = %q; want %q", got, FallbackDisplayName)
	}
}

func TestDisplayName_StoreFailuresFallBack(t *testing.T) {
	dbErr := errors.New("db error")
	tests := []struct {
		name      string
		email     string
		lookupErr error
		insertErr error
		want      string
		wantLogs  []string
	}{
		{
			name:      "insert fails",
			email:     "erin@example.com",
			insertErr: dbErr,
			want:      "erin@example.com",
			wantLogs:  []string{"failed to create profile"},
		},
		{
			name:      "insert fails without email",
			insertErr: dbErr,
			want:      FallbackDisplayName,
			wantLogs:  []string{"failed to create profile"},
		},
		{
			name:      "lookup fails, insert succeeds",
			email:     "erin@example.com",
			lookupErr: dbErr,
			want:      "erin",
			wantLogs:  []string{"failed to load profile"},
		},
		{
			name:      "both fail",
			email:     "erin@example.com",
			lookupErr: dbErr,
			insertErr: dbErr,
			want:      "erin@example.com",
			wantLogs:  []string{"failed to load profile", "failed to create profile"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockProfileRepo{
				DisplayNameFunc: func(context.Context, string) (string, bool, error) {
					return "", false, tt.lookupErr
				},
				EnsureProfileFunc: func(context.Context, string, string) error {
					return tt.insertErr
				},
			}
			core, logs := observer.New(zapcore.WarnLevel)
			svc := NewProfileService(repo, zap.New(core))

			if got := svc.DisplayName(context.Background(), "erin", tt.email); got != tt.want {
				t.Errorf("DisplayName = %q; want %q", got, tt.want)
			}
			entries := logs.All()
			if len(entries) != len(tt.wantLogs) {
				t.Fatalf("logged %d entries; want %d", len(entries), len(tt.wantLogs))
			}
			for i, msg := range tt.wantLogs {
				if entries[i].Message != msg {
					t.Errorf("log[%d] = %q; want %q", i, entries[i].Message, msg)
				}
			}
		})
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Field: "color_r", Reason: "must be at most 255"}
	if err.Error() != "color_r: must be at most 255" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, ErrValidation) {
		t.Error("ValidationError should match ErrValidation")
	}
}

func TestCheckRetention(t *testing.T) {
	if err := CheckRetention(RestoreWindow); err != nil {
		t.Errorf("CheckRetention(RestoreWindow) = %v; want nil", err)
	}
	err := CheckRetention(RestoreWindow - 1)
	if !errors.Is(err, ErrRetentionTooShort) {
		t.Fatalf("CheckRetention = %v; want ErrRetentionTooShort", err)
	}
	if want := "retention 167h59m59.999999999s is shorter than the 168h0m0s restore window"; err.Error() != want {
		t.Errorf("Error() = %q; want %q", err.Error(), want)
	}
}
