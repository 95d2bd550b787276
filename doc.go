// Package ddc is the Composition Root of the Data Directory Cataloger.
//
// The cataloger manages many directories of data by keeping a README.yaml in
// each of them. Given a top-level directory it looks one level down, parses
// every README.yaml it finds, and prints a Markdown document summarising the
// metadata, ready to be redirected to a file, converted with pandoc, or used
// as content for a static site generator.
//
// Pipeline:
//
//   - **Collect**: immediate subdirectories are split into those with and without a metadata file.
//   - **Parse**: files are decoded as plain YAML data; broken files become empty records.
//   - **Sanitize**: keys and string values lose characters that could inject markup.
//   - **Audit**: the union of all keys is compared with each record.
//   - **Render**: table, metadata list, consistency checks and footer.
//
// Usage:
//
//	svc, err := ddc.New(
//		ddc.WithColumns("Title", "Description", "Data Manager"),
//		ddc.WithLogger(logger),
//	)
//
//	_, err = svc.Run(ctx, "./data", os.Stdout)
package ddc
