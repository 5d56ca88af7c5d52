package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/kv"
	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/logging"
	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/model"
	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/service"
	"golang.org/x/crypto/bcrypt"
)

func newTestStore(t *testing.T) kv.Store {
	t.Helper()
	s, err := kv.NewSQLiteStore(filepath.Join(t.TempDir(), "big2fit.db"), logging.Nop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func fixedNow() time.Time {
	return time.Date(2024, time.March, 10, 9, 30, 0, 0, time.Local)
}

func newTestSession(t *testing.T, store kv.Store) *service.Session {
	t.Helper()
	return service.NewSession(store, service.SessionOptions{
		BcryptCost: bcrypt.MinCost,
		Logger:     logging.Nop(),
		Now:        fixedNow,
	})
}

func signupInput(name, email, password string) service.SignupInput {
	return service.SignupInput{Name: name, Email: email, Password: password, ConfirmPassword: password}
}

func mustSignup(t *testing.T, s *service.Session, name, email, password string) model.Account {
	t.Helper()
	acct, err := s.Signup(context.Background(), signupInput(name, email, password))
	if err != nil {
		t.Fatalf("signup %s: %v", email, err)
	}
	return acct
}

func completeProfile() model.Profile {
	return model.Profile{
		Name:          "Ana",
		Age:           30,
		HeightCm:      175,
		WeightKg:      70,
		Gender:        model.GenderMale,
		ActivityLevel: model.ActivityModerate,
		Goal:          model.GoalMaintain,
	}
}
