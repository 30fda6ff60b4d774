// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package publish writes rendered charts and reports to their final
// destination: a local directory or a Cloud Storage bucket.
package publish

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

// A Sink creates named outputs.
type Sink interface {
	// Create returns a writer for the named output. The output is
	// complete once the writer is closed without error.
	Create(ctx context.Context, name string) (io.WriteCloser, error)

	// Location describes where the named output is written.
	Location(name string) string
}

// Dir is a Sink writing files into a local directory, which is
// created on demand.
type Dir string

func (d Dir) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	if err := os.MkdirAll(string(d), 0777); err != nil {
		return nil, err
	}
	return os.Create(d.Location(name))
}

func (d Dir) Location(name string) string {
	return filepath.Join(string(d), name)
}

// GCS is a Sink writing objects into a Cloud Storage bucket.
type GCS struct {
	client *storage.Client
	bucket string
	prefix string
}

// ClientOptions returns the options to authenticate to Cloud Storage
// with the service account key in credentialsFile, or, if it is
// empty, with the application default credentials.
func ClientOptions(ctx context.Context, credentialsFile string) ([]option.ClientOption, error) {
	if credentialsFile != "" {
		return []option.ClientOption{option.WithCredentialsFile(credentialsFile)}, nil
	}
	ts, err := google.DefaultTokenSource(ctx, storage.ScopeReadWrite)
	if err != nil {
		return nil, fmt.Errorf("finding default credentials: %w", err)
	}
	return []option.ClientOption{option.WithTokenSource(ts)}, nil
}

// NewGCS returns a sink for target, which has the form bucket or
// bucket/prefix. The caller must Close it.
func NewGCS(ctx context.Context, target string, opts ...option.ClientOption) (*GCS, error) {
	bucket, prefix, _ := strings.Cut(strings.TrimPrefix(target, "gs://"), "/")
	if bucket == "" {
		return nil, fmt.Errorf("invalid Cloud Storage target %q", target)
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &GCS{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}, nil
}

func (g *GCS) object(name string) string {
	return path.Join(g.prefix, name)
}

func (g *GCS) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	w := g.client.Bucket(g.bucket).Object(g.object(name)).NewWriter(ctx)
	w.ContentType = mime.TypeByExtension(path.Ext(name))
	return w, nil
}

func (g *GCS) Location(name string) string {
	return "gs://" + g.bucket + "/" + g.object(name)
}

// Close releases the client of g.
func (g *GCS) Close() error {
	return g.client.Close()
}

// WriteTo writes the content of wt to the named output of s.
func WriteTo(ctx context.Context, s Sink, name string, wt io.WriterTo) (err error) {
	w, err := s.Create(ctx, name)
	if err != nil {
		return err
	}
	if _, err = wt.WriteTo(w); err != nil {
		w.Close()
		return fmt.Errorf("writing %s: %w", s.Location(name), err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", s.Location(name), err)
	}
	return nil
}
