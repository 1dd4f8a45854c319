// Package backup writes and restores tar.gz archives of BoardReviews data.
// The archive holds the database contents as a YAML dataset, so an archive
// taken from one backend can be restored into the other.
package backup

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/HerbHall/boardreviews/internal/seed"
	"github.com/HerbHall/boardreviews/internal/store"
)

// DatasetName is the archive entry holding the exported rows.
const DatasetName = "dataset.yaml"

// maxEntrySize bounds how much of a single archive entry Restore will read.
const maxEntrySize = 256 << 20

// Backup exports every row of s and writes it, plus the config file when
// configPath names an existing file, to a tar.gz archive at outputPath.
func Backup(ctx context.Context, s store.Store, configPath, outputPath string) error {
	ds, err := seed.Export(ctx, s)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(ds)
	if err != nil {
		return fmt.Errorf("encoding dataset: %w", err)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer outFile.Close()

	gw := gzip.NewWriter(outFile)
	tw := tar.NewWriter(gw)

	if err := addBytesToTar(tw, DatasetName, data); err != nil {
		return fmt.Errorf("adding dataset to archive: %w", err)
	}

	// A missing config file is skipped silently.
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := addFileToTar(tw, configPath, filepath.Base(configPath)); err != nil {
				return fmt.Errorf("adding config to archive: %w", err)
			}
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}
	if err := gw.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}
	return outFile.Close()
}

// Restore replaces the contents of s with the dataset in the archive at
// inputPath. Other archive entries are ignored.
func Restore(ctx context.Context, s store.Store, inputPath string) error {
	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	gr, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("reading archive: %w", err)
	}
	defer gr.Close()

	tr := tar.NewReader(gr)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("archive has no %s", DatasetName)
		}
		if err != nil {
			return fmt.Errorf("reading archive: %w", err)
		}
		if hdr.Name != DatasetName {
			continue
		}

		raw, err := io.ReadAll(io.LimitReader(tr, maxEntrySize))
		if err != nil {
			return fmt.Errorf("reading %s: %w", DatasetName, err)
		}
		ds, err := seed.Parse(raw)
		if err != nil {
			return err
		}
		return seed.Apply(ctx, s, ds)
	}
}

func addBytesToTar(tw *tar.Writer, name string, data []byte) error {
	hdr := &tar.Header{
		Name:    name,
		Mode:    0o600,
		Size:    int64(len(data)),
		ModTime: time.Now(),
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	_, err := tw.Write(data)
	return err
}

// addFileToTar adds a single file to the tar archive under the given name.
func addFileToTar(tw *tar.Writer, filePath, archiveName string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	hdr.Name = archiveName

	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}

	_, err = io.Copy(tw, f)
	return err
}
