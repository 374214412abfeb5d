// Copyright 2025 - 2026, the tavernd contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package routes contains the HTTP handlers for tavernd.
package routes

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"codeberg.org/tavernd/tavernd/core/userdata"
	"codeberg.org/tavernd/tavernd/server/request_context"
)

// ErrNoUserContext reports a file request that reached a handler without
// the enrichment middleware having run. Serving would otherwise silently
// use an undefined root, so this is an error, not a fallback.
var ErrNoUserContext = errors.New("request carries no user context")

var (
	errNoDirectory = errors.New("no directory resolved for key")
	errIsDirectory = errors.New("requested path is a directory")
)

// sniffLen is how many bytes DetectContentType considers.
const sniffLen = 512

// ServeUserFile returns a handler that streams files from the current
// user's directory bound to key.
//
// The handler expects its URL prefix to have been stripped already; the
// remaining path names the file relative to the bound directory. The mux
// has percent-decoded it by this point. Every failure surfaces as an
// error for middleware.CatchError to convert into the uniform 404.
func ServeUserFile(key userdata.Key) func(w http.ResponseWriter, r *http.Request) error {
	return func(w http.ResponseWriter, r *http.Request) error {
		rc := request_context.FromRequest(r)
		if rc.Directories == nil {
			return fmt.Errorf("%w (is the user_context middleware mounted?)", ErrNoUserContext)
		}

		root, ok := rc.Directories[key]
		if !ok || root == "" {
			return fmt.Errorf("%w: %q", errNoDirectory, key)
		}

		file, err := os.Open(securePath(root, r.URL.Path))
		if err != nil {
			return fmt.Errorf("open user file: %w", err)
		}
		defer file.Close()

		stat, err := file.Stat()
		if err != nil {
			return fmt.Errorf("stat user file: %w", err)
		}

		if stat.IsDir() {
			return fmt.Errorf("%w: %q", errIsDirectory, r.URL.Path)
		}

		return sendFile(w, file, stat)
	}
}

// securePath joins the requested relative path onto root, confined to
// root: the path is cleaned as if absolute first, so "../" sequences
// cannot climb out no matter how they were spelled in the request.
func securePath(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(path.Clean("/"+rel)))
}

// sendFile writes the file bytes with a content type from the file
// extension, sniffing the first bytes when the extension says nothing.
//
// Deliberately plainer than http.ServeContent: no Last-Modified, no ETag,
// no range handling. File responses carry bytes and a status, nothing else.
func sendFile(w http.ResponseWriter, file *os.File, stat os.FileInfo) error {
	ctype := mime.TypeByExtension(filepath.Ext(stat.Name()))
	if ctype == "" {
		var buf [sniffLen]byte

		n, _ := io.ReadFull(file, buf[:])
		ctype = http.DetectContentType(buf[:n])

		if _, err := file.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("rewind user file: %w", err)
		}
	}

	w.Header().Set("Content-Type", ctype)
	w.Header().Set("Content-Length", strconv.FormatInt(stat.Size(), 10))

	if _, err := io.Copy(w, file); err != nil {
		return fmt.Errorf("stream user file: %w", err)
	}

	return nil
}
