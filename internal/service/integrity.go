package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/blob"
	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/kv"
	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/model"
)

const snapshotVersion = 1

// Snapshot is a portable copy of every stored key.
type Snapshot struct {
	Version   int                        `json:"version"`
	CreatedAt time.Time                  `json:"created_at"`
	Entries   map[string]json.RawMessage `json:"entries"`
}

type BackupInfo struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"`
	Keys      int       `json:"keys,omitempty"`
}

type DoctorReport struct {
	InvalidValues   []string `json:"invalid_values"`
	OrphanKeys      []string `json:"orphan_keys"`
	DuplicateEmails []string `json:"duplicate_emails"`
	DanglingCurrent bool     `json:"dangling_current_user"`
	FixedKeys       int      `json:"fixed_keys,omitempty"`
}

func (r DoctorReport) HasIssues() bool {
	return len(r.InvalidValues) > 0 || len(r.OrphanKeys) > 0 || len(r.DuplicateEmails) > 0 || r.DanglingCurrent
}

func ExportSnapshot(ctx context.Context, store kv.Store) (*Snapshot, error) {
	keys, err := store.Keys(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list keys for snapshot: %w", err)
	}
	snap := &Snapshot{Version: snapshotVersion, CreatedAt: time.Now().UTC(), Entries: make(map[string]json.RawMessage, len(keys))}
	for _, k := range keys {
		v, ok, err := store.Get(ctx, k)
		if err != nil {
			return nil, fmt.Errorf("read %s for snapshot: %w", k, err)
		}
		if !ok {
			continue
		}
		if !json.Valid(v) {
			return nil, fmt.Errorf("value of %s is not valid JSON; run doctor --fix first", k)
		}
		snap.Entries[k] = json.RawMessage(v)
	}
	return snap, nil
}

// ImportSnapshot writes every snapshot entry into store. With replace, keys
// missing from the snapshot are deleted.
func ImportSnapshot(ctx context.Context, store kv.Store, snap *Snapshot, replace bool) error {
	if snap.Version != snapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	if replace {
		keys, err := store.Keys(ctx, "")
		if err != nil {
			return fmt.Errorf("list keys before restore: %w", err)
		}
		for _, k := range keys {
			if _, keep := snap.Entries[k]; keep {
				continue
			}
			if err := store.Delete(ctx, k); err != nil {
				return fmt.Errorf("delete %s before restore: %w", k, err)
			}
		}
	}
	keys := make([]string, 0, len(snap.Entries))
	for k := range snap.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		var buf bytes.Buffer
		if err := json.Compact(&buf, snap.Entries[k]); err != nil {
			return fmt.Errorf("restore %s: %w", k, err)
		}
		if err := store.Set(ctx, k, buf.Bytes()); err != nil {
			return fmt.Errorf("restore %s: %w", k, err)
		}
	}
	return nil
}

func CreateBackup(ctx context.Context, store kv.Store, outPath string) (BackupInfo, error) {
	if strings.TrimSpace(outPath) == "" {
		return BackupInfo{}, fmt.Errorf("backup output path is required")
	}
	snap, err := ExportSnapshot(ctx, store)
	if err != nil {
		return BackupInfo{}, err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return BackupInfo{}, fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return BackupInfo{}, fmt.Errorf("create backup directory: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o600); err != nil {
		return BackupInfo{}, fmt.Errorf("write backup: %w", err)
	}
	checksum := checksumOf(data)
	if err := os.WriteFile(outPath+".sha256", []byte(checksum+"\n"), 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write checksum file: %w", err)
	}
	st, err := os.Stat(outPath)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("stat backup: %w", err)
	}
	return BackupInfo{Path: outPath, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size(), Keys: len(snap.Entries)}, nil
}

// ReadBackup decodes a backup file, checking it against its .sha256 sidecar
// when one exists.
func ReadBackup(backupPath string) (*Snapshot, error) {
	data, err := os.ReadFile(backupPath)
	if err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}
	if expected, err := os.ReadFile(backupPath + ".sha256"); err == nil {
		if strings.TrimSpace(string(expected)) != checksumOf(data) {
			return nil, fmt.Errorf("backup checksum mismatch")
		}
	}
	return decodeSnapshot(data)
}

// RestoreBackup refuses to overwrite a non-empty store unless force is set.
func RestoreBackup(ctx context.Context, store kv.Store, backupPath string, force bool) (*Snapshot, error) {
	if strings.TrimSpace(backupPath) == "" {
		return nil, fmt.Errorf("backup path is required")
	}
	snap, err := ReadBackup(backupPath)
	if err != nil {
		return nil, err
	}
	if !force {
		keys, err := store.Keys(ctx, "")
		if err != nil {
			return nil, fmt.Errorf("inspect target store: %w", err)
		}
		if len(keys) > 0 {
			return nil, fmt.Errorf("target store already has data; use --force to overwrite")
		}
	}
	if err := ImportSnapshot(ctx, store, snap, true); err != nil {
		return nil, err
	}
	return snap, nil
}

func ListBackups(dir string) ([]BackupInfo, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []BackupInfo{}, nil
		}
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	out := make([]BackupInfo, 0)
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
			continue
		}
		full := filepath.Join(dir, f.Name())
		st, err := os.Stat(full)
		if err != nil {
			continue
		}
		checksum := ""
		if b, err := os.ReadFile(full + ".sha256"); err == nil {
			checksum = strings.TrimSpace(string(b))
		}
		out = append(out, BackupInfo{Path: full, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// UploadBackup copies a local backup and its checksum under prefix and
// returns the object key.
func UploadBackup(ctx context.Context, store blob.Store, prefix string, info BackupInfo) (string, error) {
	data, err := os.ReadFile(info.Path)
	if err != nil {
		return "", fmt.Errorf("read backup for upload: %w", err)
	}
	key := path.Join(prefix, filepath.Base(info.Path))
	if _, err := store.PutObject(ctx, key, data, "application/json"); err != nil {
		return "", fmt.Errorf("upload backup: %w", err)
	}
	if _, err := store.PutObject(ctx, key+".sha256", []byte(checksumOf(data)+"\n"), "text/plain"); err != nil {
		return "", fmt.Errorf("upload backup checksum: %w", err)
	}
	return key, nil
}

// DownloadBackup fetches an uploaded backup into dir and returns its path.
func DownloadBackup(ctx context.Context, store blob.Store, key, dir string) (string, error) {
	data, err := store.GetObject(ctx, key)
	if err != nil {
		return "", fmt.Errorf("download backup: %w", err)
	}
	if sum, err := store.GetObject(ctx, key+".sha256"); err == nil {
		if strings.TrimSpace(string(sum)) != checksumOf(data) {
			return "", fmt.Errorf("backup checksum mismatch")
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}
	out := filepath.Join(dir, path.Base(key))
	if err := os.WriteFile(out, data, 0o600); err != nil {
		return "", fmt.Errorf("write downloaded backup: %w", err)
	}
	return out, nil
}

// RunDoctor scans every key for undecodable values, data belonging to
// accounts that no longer exist, duplicate emails, and a dangling
// currentUser pointer. With fix, bad and orphaned keys are deleted. An
// undecodable users key is reported but never deleted.
func RunDoctor(ctx context.Context, store kv.Store, fix bool) (DoctorReport, error) {
	report := DoctorReport{InvalidValues: []string{}, OrphanKeys: []string{}, DuplicateEmails: []string{}}
	keys, err := store.Keys(ctx, "")
	if err != nil {
		return report, fmt.Errorf("doctor list keys: %w", err)
	}

	var accounts []model.Account
	usersOK := true
	if _, err := kv.GetJSON(ctx, store, kv.UsersKey, &accounts); err != nil {
		report.InvalidValues = append(report.InvalidValues, kv.UsersKey)
		usersOK = false
	}
	known := make(map[string]bool, len(accounts))
	seen := make(map[string]bool, len(accounts))
	for _, a := range accounts {
		known[a.ID] = true
		email := normalizeEmail(a.Email)
		if seen[email] {
			report.DuplicateEmails = append(report.DuplicateEmails, email)
		}
		seen[email] = true
	}

	toDelete := make([]string, 0)
	for _, k := range keys {
		if k == kv.UsersKey {
			continue
		}
		raw, ok, err := store.Get(ctx, k)
		if err != nil {
			return report, fmt.Errorf("doctor read %s: %w", k, err)
		}
		if !ok {
			continue
		}
		owner, valid := inspectValue(k, raw)
		if !valid {
			report.InvalidValues = append(report.InvalidValues, k)
			toDelete = append(toDelete, k)
			continue
		}
		if k == kv.CurrentUserKey {
			if usersOK && !known[owner] {
				report.DanglingCurrent = true
				toDelete = append(toDelete, k)
			}
			continue
		}
		if owner != "" && usersOK && !known[owner] {
			report.OrphanKeys = append(report.OrphanKeys, k)
			toDelete = append(toDelete, k)
		}
	}

	if fix {
		for _, k := range toDelete {
			if err := store.Delete(ctx, k); err != nil {
				return report, fmt.Errorf("doctor fix %s: %w", k, err)
			}
			report.FixedKeys++
		}
	}
	return report, nil
}

// inspectValue decodes raw according to its key family and returns the
// owning account id, if the key has one.
func inspectValue(key string, raw []byte) (owner string, valid bool) {
	if key == kv.CurrentUserKey {
		var id string
		if err := json.Unmarshal(raw, &id); err != nil {
			return "", false
		}
		return id, true
	}
	if id, _, ok := kv.ParseDailyLogKey(key); ok {
		var log model.DailyLog
		if err := json.Unmarshal(raw, &log); err != nil {
			return "", false
		}
		return id, true
	}
	if id, ok := kv.ParseCustomFoodsKey(key); ok {
		var foods []model.Food
		if err := json.Unmarshal(raw, &foods); err != nil {
			return "", false
		}
		return id, true
	}
	return "", json.Valid(raw)
}

func decodeSnapshot(data []byte) (*Snapshot, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var snap Snapshot
	if err := dec.Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode backup: %w", err)
	}
	if snap.Entries == nil {
		snap.Entries = map[string]json.RawMessage{}
	}
	return &snap, nil
}

func checksumOf(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
