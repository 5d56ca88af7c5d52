package big2fit

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/app"
	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/blob"
	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/config"
	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/service"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage data backups",
}

var (
	backupOut     string
	backupDir     string
	backupUpload  bool
	restoreFile   string
	restoreRemote string
	restoreForce  bool
)

// newBlobStore is swapped in tests.
var newBlobStore = func(ctx context.Context, cfg config.S3Config) (blob.Store, error) {
	return blob.NewS3Store(ctx, cfg)
}

func resolveBackupDir(cfg *config.Config) (string, error) {
	if backupDir != "" {
		return backupDir, nil
	}
	if p := cfg.StorePath(); p != "" {
		return app.BackupDirFor(p), nil
	}
	dir, err := app.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "backups"), nil
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Write a JSON snapshot of all data",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, env *appEnv) error {
			out := backupOut
			if out == "" {
				dir, err := resolveBackupDir(env.cfg)
				if err != nil {
					return err
				}
				out = filepath.Join(dir, fmt.Sprintf("big2fit-%s.json", time.Now().Format("20060102-150405")))
			}
			info, err := service.CreateBackup(ctx, env.store, out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created backup: %s\n", info.Path)
			fmt.Fprintf(cmd.OutOrStdout(), "Keys: %d\n", info.Keys)
			fmt.Fprintf(cmd.OutOrStdout(), "Checksum: %s\n", info.Checksum)
			if !backupUpload {
				return nil
			}
			if !env.cfg.S3.Enabled() {
				return fmt.Errorf("--upload requires BIG2FIT_S3_BUCKET")
			}
			remote, err := newBlobStore(ctx, env.cfg.S3)
			if err != nil {
				return err
			}
			key, err := service.UploadBackup(ctx, remote, env.cfg.S3.Prefix, info)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded: s3://%s/%s\n", env.cfg.S3.Bucket, key)
			return nil
		})
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dir, err := resolveBackupDir(cfg)
		if err != nil {
			return err
		}
		items, err := service.ListBackups(dir)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "FILE\tSIZE\tCREATED\tCHECKSUM")
		for _, it := range items {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\t%s\n", it.Path, it.SizeBytes, it.CreatedAt.Format(time.RFC3339), it.Checksum)
		}
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore data from a backup",
	RunE: func(cmd *cobra.Command, args []string) error {
		if (restoreFile == "") == (restoreRemote == "") {
			return fmt.Errorf("exactly one of --file or --remote is required")
		}
		return withStore(cmd, func(ctx context.Context, env *appEnv) error {
			file := restoreFile
			if restoreRemote != "" {
				if !env.cfg.S3.Enabled() {
					return fmt.Errorf("--remote requires BIG2FIT_S3_BUCKET")
				}
				remote, err := newBlobStore(ctx, env.cfg.S3)
				if err != nil {
					return err
				}
				dir, err := resolveBackupDir(env.cfg)
				if err != nil {
					return err
				}
				if file, err = service.DownloadBackup(ctx, remote, restoreRemote, dir); err != nil {
					return err
				}
			}
			snap, err := service.RestoreBackup(ctx, env.store, file, restoreForce)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %d keys from %s\n", len(snap.Entries), file)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupCreateCmd, backupListCmd, backupRestoreCmd)

	backupCreateCmd.Flags().StringVar(&backupOut, "out", "", "Backup output file path")
	backupCreateCmd.Flags().StringVar(&backupDir, "dir", "", "Backup directory (used when --out is empty)")
	backupCreateCmd.Flags().BoolVar(&backupUpload, "upload", false, "Also upload the backup to S3")
	backupListCmd.Flags().StringVar(&backupDir, "dir", "", "Backup directory (default: alongside the store under backups/)")
	backupRestoreCmd.Flags().StringVar(&restoreFile, "file", "", "Backup .json file path")
	backupRestoreCmd.Flags().StringVar(&restoreRemote, "remote", "", "S3 object key of an uploaded backup")
	backupRestoreCmd.Flags().StringVar(&backupDir, "dir", "", "Directory to download --remote backups into")
	backupRestoreCmd.Flags().BoolVar(&restoreForce, "force", false, "Overwrite existing data")
}
