// SPDX-License-Identifier: MPL-2.0

// Package dexfile reads dex container files from disk. Loading validates
// the header (magic and version) and reads the class definition count;
// it does not parse the container's full contents.
package dexfile
