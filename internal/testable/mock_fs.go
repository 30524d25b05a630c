// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package testable

import (
	"os"
)

// MockFileSystem is a test double for FileSystem. Each method has a
// corresponding function field. When the field is non-nil, the mock calls it;
// otherwise, it falls through to OsFileSystem (real OS behavior).
type MockFileSystem struct {
	StatFn      func(name string) (os.FileInfo, error)
	ReadFileFn  func(name string) ([]byte, error)
	WriteFileFn func(name string, data []byte, perm os.FileMode) error
	RenameFn    func(oldpath, newpath string) error
	RemoveFn    func(name string) error
	MkdirAllFn  func(path string, perm os.FileMode) error
	ReadDirFn   func(name string) ([]os.DirEntry, error)
}

// Compile-time interface check.
var _ FileSystem = (*MockFileSystem)(nil)

var real OsFileSystem

// Stat calls StatFn if set, otherwise delegates to OsFileSystem.
func (m *MockFileSystem) Stat(name string) (os.FileInfo, error) {
	if m.StatFn != nil {
		return m.StatFn(name)
	}
	return real.Stat(name)
}

// ReadFile calls ReadFileFn if set, otherwise delegates to OsFileSystem.
func (m *MockFileSystem) ReadFile(name string) ([]byte, error) {
	if m.ReadFileFn != nil {
		return m.ReadFileFn(name)
	}
	return real.ReadFile(name)
}

// WriteFile calls WriteFileFn if set, otherwise delegates to OsFileSystem.
func (m *MockFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	if m.WriteFileFn != nil {
		return m.WriteFileFn(name, data, perm)
	}
	return real.WriteFile(name, data, perm)
}

// Rename calls RenameFn if set, otherwise delegates to OsFileSystem.
func (m *MockFileSystem) Rename(oldpath, newpath string) error {
	if m.RenameFn != nil {
		return m.RenameFn(oldpath, newpath)
	}
	return real.Rename(oldpath, newpath)
}

// Remove calls RemoveFn if set, otherwise delegates to OsFileSystem.
func (m *MockFileSystem) Remove(name string) error {
	if m.RemoveFn != nil {
		return m.RemoveFn(name)
	}
	return real.Remove(name)
}

// MkdirAll calls MkdirAllFn if set, otherwise delegates to OsFileSystem.
func (m *MockFileSystem) MkdirAll(path string, perm os.FileMode) error {
	if m.MkdirAllFn != nil {
		return m.MkdirAllFn(path, perm)
	}
	return real.MkdirAll(path, perm)
}

// ReadDir calls ReadDirFn if set, otherwise delegates to OsFileSystem.
func (m *MockFileSystem) ReadDir(name string) ([]os.DirEntry, error) {
	if m.ReadDirFn != nil {
		return m.ReadDirFn(name)
	}
	return real.ReadDir(name)
}
