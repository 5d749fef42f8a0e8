// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Id identifies a known failure class with rendered help text.
type Id int

const (
	DexenDirInvalidId Id = iota + 1
	ArchiveLoadFailedId
	ContainerLoadFailedId
	MetadataParseErrorId
	ConfigLoadFailedId
)

// MarkdownMsg is markdown help text rendered for terminal display.
type MarkdownMsg string

// Issue pairs a failure class with its rendered help text.
type Issue struct {
	id    Id          // ID used to look up the issue
	mdMsg MarkdownMsg // Markdown text that will be rendered
}

// Id returns the issue identifier.
func (i *Issue) Id() Id {
	return i.id
}

// MarkdownMsg returns the raw markdown help text.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Render renders the issue's markdown with the given glamour style.
func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

var (
	render = glamour.Render

	dexenDirInvalidIssue = &Issue{
		id: DexenDirInvalidId,
		mdMsg: `
# Dexen directory is not usable!

The path passed via --dexendir must be an existing directory containing
the application's container files.

## Expected layout:
~~~
<dexendir>/
  classes.dex
  secondary-1.dex
  secondary-2.dex
  <module>/
    <module>.json
    <module>/*.dex
~~~

## Things you can try:
- Check the --dexendir path for typos
- Run the unpack step of your build first, then point --dexendir at
  its output directory`,
	}

	archiveLoadFailedIssue = &Issue{
		id: ArchiveLoadFailedId,
		mdMsg: `
# Classpath archive could not be registered!

One of the archives in --jars failed to load. Archives are registered
strictly left to right and the run stops at the first failure, because
class loading depends on the classpath being fully populated.

## Things you can try:
- Check the failing path printed above
- --jars takes a single list separated by ',' or ':':
~~~
$ dexboot boot --jars core.jar,framework.jar:ext.jar ...
~~~`,
	}

	containerLoadFailedIssue = &Issue{
		id: ContainerLoadFailedId,
		mdMsg: `
# Container file could not be loaded!

A container file was discovered but failed to load. Assembly is
all-or-nothing: a single failed container aborts the whole run.

## Common causes:
- The file is truncated or not a dex container
- A module metadata file lists a path that does not exist

## Things you can try:
- Verify the file with 'dexboot scan --dexendir <dir>'
- Re-run the build step that produced the container`,
	}

	metadataParseErrorIssue = &Issue{
		id: MetadataParseErrorId,
		mdMsg: `
# Module metadata is malformed!

A module directory qualified for loading (it contains
'<module>/<module>.json') but the metadata did not validate.

## Expected metadata shape:
~~~json
{
  "name": "feature",
  "files": ["feature.dex", "feature-2.dex"],
  "dependencies": ["base"]
}
~~~

## Things you can try:
- Check the error message above for the offending field
- 'name' must start with a letter; 'files' must be a list of
  non-empty strings in the intended load order`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the dexboot configuration file.

## Configuration file locations:
- Linux: ~/.config/dexboot/config.cue
- macOS: ~/Library/Application Support/dexboot/config.cue
- Windows: %APPDATA%\dexboot\config.cue

## Things you can try:
- Create a default configuration:
~~~
$ dexboot config init
~~~
- Check the configuration syntax
- Remove the config file to use defaults`,
	}

	issues = map[Id]*Issue{
		dexenDirInvalidIssue.Id():     dexenDirInvalidIssue,
		archiveLoadFailedIssue.Id():   archiveLoadFailedIssue,
		containerLoadFailedIssue.Id(): containerLoadFailedIssue,
		metadataParseErrorIssue.Id():  metadataParseErrorIssue,
		configLoadFailedIssue.Id():    configLoadFailedIssue,
	}
)

// Values returns all registered issues.
func Values() []*Issue {
	vals := maps.Values(issues)
	slices.SortFunc(vals, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return vals
}

// Get returns the issue registered for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
