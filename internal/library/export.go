// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"context"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/lukisch/DokuReader/pkg/types"
)

// Backup is the serializable form of the whole catalog.
type Backup struct {
	Topics []TopicBackup `yaml:"topics"`
}

// TopicBackup holds one topic and its ordered document references.
type TopicBackup struct {
	Name      string              `yaml:"name"`
	Documents []types.DocumentRef `yaml:"documents"`
}

// ExportYAML writes the whole catalog to w as YAML, topics sorted
// case-insensitively, documents in insertion order.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer) error {
	topics, err := s.Topics(ctx)
	if err != nil {
		return err
	}

	backup := Backup{Topics: make([]TopicBackup, 0, len(topics))}
	for _, name := range topics {
		docs, err := s.Documents(ctx, name)
		if err != nil {
			return err
		}
		backup.Topics = append(backup.Topics, TopicBackup{Name: name, Documents: docs})
	}

	data, err := yaml.Marshal(backup)
	if err != nil {
		return fmt.Errorf("marshaling catalog: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing catalog export: %w", err)
	}
	return nil
}

// ImportYAML merges a catalog backup into the store. Existing references
// keep their position and read flag; new ones are appended. Referenced
// files that no longer exist are skipped like any other missing path.
func (s *Store) ImportYAML(ctx context.Context, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading catalog import: %w", err)
	}

	var backup Backup
	if err := yaml.Unmarshal(data, &backup); err != nil {
		return fmt.Errorf("unmarshaling catalog: %w", err)
	}

	for _, topic := range backup.Topics {
		paths := make([]string, len(topic.Documents))
		for i, d := range topic.Documents {
			paths[i] = d.Path
		}
		if _, err := s.AddDocuments(ctx, topic.Name, paths); err != nil {
			return err
		}
		for _, d := range topic.Documents {
			if !d.Read {
				continue
			}
			// Read flags only transfer for references that made it in.
			if err := s.SetRead(ctx, topic.Name, d.Path, true); err != nil {
				continue
			}
		}
	}
	return nil
}
