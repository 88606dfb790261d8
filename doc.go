// Package sn2ssg is the composition root for the note-to-site converter.
//
// It bridges a Simplenote account and a static-site generator: notes
// carrying the publication tag are fetched through sncli, transformed
// into front-matter Markdown pages, and written idempotently into the
// directory an SSG build consumes.
//
// The core pipeline lives in pkg/core and is agnostic to where notes
// come from and where pages go; the default adapters (sncli source,
// filesystem writer, YAML/TOML/template renderers) are wired here.
//
// Usage:
//
//	cfg := sn2ssg.FromEnv()
//	report, err := sn2ssg.Run(ctx, cfg)
//
// Collaborators can be swapped via functional options:
//
//	report, err := sn2ssg.Run(ctx, cfg,
//		sn2ssg.WithSource(fixtureSource),
//		sn2ssg.WithLogger(logger),
//	)
package sn2ssg
