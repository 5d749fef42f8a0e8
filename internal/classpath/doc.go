// SPDX-License-Identifier: MPL-2.0

// Package classpath registers library archives (jars) before any
// container file is loaded, so class resolution sees a fully populated
// classpath from the first container onward.
package classpath
