package main

import (
	"context"
	"fmt"

	"github.com/vistalabs/vista/internal/backup"
	"github.com/vistalabs/vista/internal/bootstrap"
	"github.com/vistalabs/vista/internal/config"
)

type BackupCommand struct{}

func (c *BackupCommand) Name() string {
	return "backup"
}

func (c *BackupCommand) Description() string {
	return "Upload a snapshot of the configured store to S3 now"
}

func (c *BackupCommand) Run(args []string) error {
	cfg, err := config.LoadUnvalidated()
	if err != nil {
		return err
	}
	if !cfg.BackupEnabled() {
		return fmt.Errorf("BACKUP_S3_BUCKET is not set")
	}

	ctx := context.Background()
	store, err := bootstrap.InitializeStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	uploader, err := backup.NewS3Uploader(ctx, backup.S3Config{
		Bucket:          cfg.BackupS3Bucket,
		Region:          cfg.BackupS3Region,
		Endpoint:        cfg.BackupS3Endpoint,
		PathStyle:       cfg.BackupS3PathStyle,
		AccessKeyID:     cfg.BackupS3AccessKeyID,
		SecretAccessKey: cfg.BackupS3SecretAccessKey,
	})
	if err != nil {
		return err
	}

	res, err := backup.NewJob(store, uploader).Run(ctx)
	if err != nil {
		return err
	}
	PrintSuccess("Uploaded s3://%s/%s (%d bytes)", uploader.Bucket(), res.Key, res.Bytes)
	return nil
}
