package big2fit

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/blob"
	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/config"
	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/kv"
	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/logging"
	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default; flag values are package
// vars and survive between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCLI(t, args...)
	require.NoError(t, err, "big2fit %s\n%s", strings.Join(args, " "), out)
	return out
}

func newCLIEnv(t *testing.T) string {
	t.Helper()
	t.Setenv("BIG2FIT_BCRYPT_COST", "4")
	t.Setenv("BIG2FIT_STORE", "")
	t.Setenv("BIG2FIT_LOG_LEVEL", "error")
	return filepath.Join(t.TempDir(), "big2fit.db")
}

func signupAndCompleteProfile(t *testing.T, db string) {
	t.Helper()
	mustRun(t, "--db", db, "signup", "--name", "Ana", "--email", "ana@example.com", "--password", "secret1")
	mustRun(t, "--db", db, "profile", "set", "--age", "30", "--height", "175", "--weight", "70", "--gender", "male", "--activity", "moderate", "--goal", "maintain")
}

func todaySummary(t *testing.T, db, date string) service.DailySummary {
	t.Helper()
	out := mustRun(t, "--db", db, "--date", date, "today", "--json")
	var s service.DailySummary
	require.NoError(t, json.Unmarshal([]byte(out), &s), out)
	return s
}

func TestRootHelp(t *testing.T) {
	out, err := runCLI(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "big2fit")
}

func TestInitCommandIdempotent(t *testing.T) {
	db := newCLIEnv(t)
	for i := 0; i < 2; i++ {
		out := mustRun(t, "--db", db, "init")
		assert.Contains(t, out, "Initialized big2fit sqlite store at "+db)
	}
}

func TestVersionCommand(t *testing.T) {
	out := mustRun(t, "version")
	assert.True(t, strings.HasPrefix(out, "big2fit "), out)
}

func TestAuthFlow(t *testing.T) {
	db := newCLIEnv(t)

	out := mustRun(t, "--db", db, "whoami")
	assert.Equal(t, "Not logged in\n", out)

	_, err := runCLI(t, "--db", db, "signup", "--name", "Ana", "--email", "ana@example.com", "--password", "secret1", "--confirm", "other12")
	require.Error(t, err)

	out = mustRun(t, "--db", db, "signup", "--name", "Ana", "--email", "Ana@Example.com", "--password", "secret1")
	assert.Contains(t, out, "Created account")

	_, err = runCLI(t, "--db", db, "signup", "--name", "Other", "--email", "ana@example.com", "--password", "secret1")
	require.ErrorIs(t, err, service.ErrEmailTaken)

	out = mustRun(t, "--db", db, "whoami")
	assert.Contains(t, out, "Ana")

	mustRun(t, "--db", db, "logout")
	_, err = runCLI(t, "--db", db, "meal", "list")
	require.ErrorIs(t, err, service.ErrNotAuthenticated)

	_, err = runCLI(t, "--db", db, "login", "--email", "ana@example.com", "--password", "wrong-pass")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)

	out = mustRun(t, "--db", db, "login", "--email", "ANA@example.com", "--password", "secret1")
	assert.Contains(t, out, "Logged in as")
	assert.Contains(t, out, "Profile incomplete")

	mustRun(t, "--db", db, "password", "--current", "secret1", "--new", "secret2", "--confirm", "secret2")
	mustRun(t, "--db", db, "logout")
	_, err = runCLI(t, "--db", db, "login", "--email", "ana@example.com", "--password", "secret1")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
	mustRun(t, "--db", db, "login", "--email", "ana@example.com", "--password", "secret2")
}

func TestTodayRequiresCompleteProfile(t *testing.T) {
	db := newCLIEnv(t)
	mustRun(t, "--db", db, "signup", "--name", "Ana", "--email", "ana@example.com", "--password", "secret1")

	_, err := runCLI(t, "--db", db, "today")
	require.ErrorIs(t, err, service.ErrIncompleteProfile)

	mustRun(t, "--db", db, "profile", "set", "--age", "30", "--height", "175", "--weight", "70", "--activity", "moderate")
	out := mustRun(t, "--db", db, "profile", "show")
	assert.Contains(t, out, "Target: 2267 kcal | P 170g | C 227g | F 76g")
}

func TestDayInLife(t *testing.T) {
	db := newCLIEnv(t)
	signupAndCompleteProfile(t, db)
	const day = "2024-03-10"

	banana, err := service.FindFood(service.PredefinedFoods(), "Banana")
	require.NoError(t, err)

	out := mustRun(t, "--db", db, "--date", day, "meal", "add", "breakfast", "banana", "--grams", "120")
	assert.Contains(t, out, "Logged 120g Banana to breakfast on 2024-03-10")

	out = mustRun(t, "--db", db, "--date", day, "meal", "list")
	assert.Contains(t, out, banana.ID)

	mustRun(t, "--db", db, "--date", day, "water", "add")
	out = mustRun(t, "--db", db, "--date", day, "water", "add")
	assert.Contains(t, out, "500 / 3000 ml")

	mustRun(t, "--db", db, "--date", day, "exercise", "add", "Running", "--minutes", "30")

	s := todaySummary(t, db, day)
	assert.Equal(t, day, s.Date)
	assert.Equal(t, 2267, s.TargetCalories)
	assert.Equal(t, 107, s.Consumed.Calories)
	assert.Equal(t, 330, s.ExerciseCalories)
	assert.Equal(t, -223, s.NetCalories)
	assert.Equal(t, 2490, s.RemainingCalories)
	assert.Equal(t, 500, s.WaterML)

	out = mustRun(t, "--db", db, "--date", day, "meal", "remove", "breakfast", banana.ID, "--grams", "100")
	assert.Contains(t, out, "No 100g entry")
	out = mustRun(t, "--db", db, "--date", day, "meal", "remove", "breakfast", banana.ID, "--grams", "120")
	assert.Contains(t, out, "Removed 120g")

	s = todaySummary(t, db, day)
	assert.Equal(t, 0, s.Consumed.Calories)

	other := todaySummary(t, db, "2024-03-11")
	assert.Equal(t, 0, other.ExerciseCalories)
	assert.Equal(t, 0, other.WaterML)

	out = mustRun(t, "--db", db, "history")
	assert.Contains(t, out, day)
	assert.NotContains(t, out, "2024-03-11")
}

func TestDateNavigation(t *testing.T) {
	db := newCLIEnv(t)
	signupAndCompleteProfile(t, db)

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	out := mustRun(t, "--db", db, "--date", "prev", "water", "set", "750")
	assert.Contains(t, out, "Water on "+yesterday)

	_, err := runCLI(t, "--db", db, "--date", "10/03/2024", "water", "add")
	require.Error(t, err)
}

func TestCustomFoodLogging(t *testing.T) {
	db := newCLIEnv(t)
	signupAndCompleteProfile(t, db)

	out := mustRun(t, "--db", db, "--date", "2024-03-10", "food", "add-custom", "--name", "Protein bar", "--calories", "400", "--protein", "30", "--carbs", "40", "--fat", "12", "--meal", "snacks", "--grams", "50")
	assert.Contains(t, out, "Added custom food Protein bar")
	assert.Contains(t, out, "Logged 50g Protein bar to snacks")

	out = mustRun(t, "--db", db, "food", "search", "protein")
	assert.Contains(t, out, "Protein bar")

	s := todaySummary(t, db, "2024-03-10")
	assert.Equal(t, 200, s.Consumed.Calories)
}

func TestFoodImportFromBarcode(t *testing.T) {
	db := newCLIEnv(t)
	signupAndCompleteProfile(t, db)

	hits := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte(`{"status":1,"product":{"product_name":"Granola","nutriments":{"energy-kcal_100g":450,"proteins_100g":10,"carbohydrates_100g":64,"fat_100g":15}}}`))
	}))
	defer ts.Close()
	t.Setenv("BIG2FIT_OPENFOODFACTS_URL", ts.URL)

	out := mustRun(t, "--db", db, "--date", "2024-03-10", "food", "import", "7891000100103", "--meal", "breakfast", "--grams", "40")
	assert.Contains(t, out, "Imported Granola")
	assert.Contains(t, out, "from openfoodfacts: 450 kcal per 100 g")
	assert.Contains(t, out, "Logged 40g Granola to breakfast")

	out = mustRun(t, "--db", db, "food", "import", "7891000100103")
	assert.Contains(t, out, "from cache")
	assert.Equal(t, 1, hits)

	s := todaySummary(t, db, "2024-03-10")
	assert.Equal(t, 180, s.Consumed.Calories)

	_, err := runCLI(t, "--db", db, "food", "import", "not-a-code")
	require.Error(t, err)
}

func TestBackupRestoreAndDoctor(t *testing.T) {
	db := newCLIEnv(t)
	signupAndCompleteProfile(t, db)
	mustRun(t, "--db", db, "--date", "2024-03-10", "water", "set", "1000")

	backupPath := filepath.Join(t.TempDir(), "snap.json")
	out := mustRun(t, "--db", db, "backup", "create", "--out", backupPath)
	assert.Contains(t, out, "Created backup: "+backupPath)

	out = mustRun(t, "--db", db, "backup", "list", "--dir", filepath.Dir(backupPath))
	assert.Contains(t, out, backupPath)

	mustRun(t, "--db", db, "doctor")

	store, err := kv.NewSQLiteStore(db, logging.Nop())
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), kv.DailyLogKey("ghost", "2024-01-01"), []byte(`{"date":"2024-01-01"}`)))
	require.NoError(t, store.Close())

	_, err = runCLI(t, "--db", db, "doctor")
	require.Error(t, err)
	out = mustRun(t, "--db", db, "doctor", "--fix")
	assert.Contains(t, out, "Fixed keys: 1")

	restored := filepath.Join(t.TempDir(), "restored.db")
	out = mustRun(t, "--db", restored, "backup", "restore", "--file", backupPath)
	assert.Contains(t, out, "Restored")

	_, err = runCLI(t, "--db", restored, "backup", "restore", "--file", backupPath)
	require.Error(t, err)
	mustRun(t, "--db", restored, "backup", "restore", "--file", backupPath, "--force")

	s := todaySummary(t, restored, "2024-03-10")
	assert.Equal(t, 1000, s.WaterML)
}

func TestDoctorRepairsCorruptCurrentUser(t *testing.T) {
	db := newCLIEnv(t)
	signupAndCompleteProfile(t, db)

	store, err := kv.NewSQLiteStore(db, logging.Nop())
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), kv.CurrentUserKey, []byte(`{broken`)))
	require.NoError(t, store.Close())

	_, err = runCLI(t, "--db", db, "whoami")
	require.Error(t, err)

	out := mustRun(t, "--db", db, "doctor", "--fix")
	assert.Contains(t, out, "Invalid values: 1 currentUser")
	assert.Contains(t, out, "Fixed keys: 1")

	out = mustRun(t, "--db", db, "whoami")
	assert.Contains(t, out, "Not logged in")
	mustRun(t, "--db", db, "login", "--email", "ana@example.com", "--password", "secret1")
	out = mustRun(t, "--db", db, "whoami")
	assert.Contains(t, out, "ana@example.com")
}

func TestBackupRestoreRepairsCorruptUsers(t *testing.T) {
	db := newCLIEnv(t)
	signupAndCompleteProfile(t, db)
	backupPath := filepath.Join(t.TempDir(), "snap.json")
	mustRun(t, "--db", db, "backup", "create", "--out", backupPath)

	store, err := kv.NewSQLiteStore(db, logging.Nop())
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), kv.UsersKey, []byte(`[{"id":`)))
	require.NoError(t, store.Close())

	_, err = runCLI(t, "--db", db, "whoami")
	require.Error(t, err)
	out, err := runCLI(t, "--db", db, "doctor", "--fix")
	require.Error(t, err)
	assert.Contains(t, out, "Invalid values: 1 users")

	mustRun(t, "--db", db, "backup", "restore", "--file", backupPath, "--force")
	out = mustRun(t, "--db", db, "whoami")
	assert.Contains(t, out, "ana@example.com")
}

func TestBackupUploadAndRemoteRestore(t *testing.T) {
	db := newCLIEnv(t)
	signupAndCompleteProfile(t, db)
	t.Setenv("BIG2FIT_S3_BUCKET", "backups")

	remote := blob.NewMemoryStore()
	prev := newBlobStore
	newBlobStore = func(context.Context, config.S3Config) (blob.Store, error) { return remote, nil }
	t.Cleanup(func() { newBlobStore = prev })

	dir := t.TempDir()
	out := mustRun(t, "--db", db, "backup", "create", "--dir", dir, "--upload")
	assert.Contains(t, out, "Uploaded: s3://backups/big2fit/")

	keys, err := remote.ListObjects(context.Background(), "big2fit/")
	require.NoError(t, err)
	require.Len(t, keys, 2)
	var key string
	for _, k := range keys {
		if strings.HasSuffix(k, ".json") {
			key = k
		}
	}
	require.NotEmpty(t, key)

	restored := filepath.Join(t.TempDir(), "restored.db")
	out = mustRun(t, "--db", restored, "backup", "restore", "--remote", key, "--dir", t.TempDir())
	assert.Contains(t, out, "Restored")

	out = mustRun(t, "--db", restored, "whoami")
	assert.Contains(t, out, "ana@example.com")
}
