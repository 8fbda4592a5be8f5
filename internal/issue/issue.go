// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

const (
	// NoConfigFileID is reported when no schema path was given.
	NoConfigFileID ID = iota + 1
	// InvalidJSONID is reported when the schema file cannot be read or decoded.
	InvalidJSONID
	// InvalidSchemaID is reported when the schema breaks a structural rule.
	InvalidSchemaID
	// ExternalSourceFailedID is reported when the external tool fails.
	ExternalSourceFailedID
	// ConfigLoadFailedID is reported when the opsfill config cannot be loaded.
	ConfigLoadFailedID
	// OperationCancelledID is reported when the operator cancels a prompt.
	OperationCancelledID
)

type (
	// ID identifies an issue in the catalog.
	ID int

	// MarkdownMsg is the markdown body of an issue.
	MarkdownMsg string

	// HTTPLink is a documentation link attached to an issue.
	HTTPLink string

	// Issue is a catalog entry that explains a failure and how to fix it.
	Issue struct {
		id       ID
		topic    string
		mdMsg    MarkdownMsg
		docLinks []HTTPLink
	}
)

// ID returns the catalog identifier.
func (i *Issue) ID() ID { return i.id }

// Topic returns the name used by 'opsfill explain'.
func (i *Issue) Topic() string { return i.topic }

// MarkdownMsg returns the raw markdown body.
func (i *Issue) MarkdownMsg() MarkdownMsg { return i.mdMsg }

// DocLinks returns a copy of the documentation links.
func (i *Issue) DocLinks() []HTTPLink { return slices.Clone(i.docLinks) }

// Render renders the issue with the given glamour style ("dark", "light", "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.docLinks) > 0 {
		var sb strings.Builder
		sb.WriteString(md)
		sb.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			sb.WriteString("- " + string(link) + "\n")
		}
		md = sb.String()
	}
	return render(md, stylePath)
}

var (
	render = glamour.Render

	noConfigFileIssue = &Issue{
		id:    NoConfigFileID,
		topic: "no-config-file",
		mdMsg: `
# No configuration file provided

opsfill needs the path of a JSON configuration schema as its first argument.

## Things you can try:
- Pass the schema file:
~~~
$ opsfill ./config.schema.json
~~~

- Preview which keys would be asked without prompting:
~~~
$ opsfill --dry-run ./config.schema.json
~~~`,
	}

	invalidJSONIssue = &Issue{
		id:    InvalidJSONID,
		topic: "invalid-json",
		mdMsg: `
# Not a valid JSON file

The schema path could not be read, or its content is not JSON.

## Things you can try:
- Check that the path exists and is readable
- Validate the file with a JSON linter
- Remove trailing commas and comments, which JSON does not allow`,
	}

	invalidSchemaIssue = &Issue{
		id:    InvalidSchemaID,
		topic: "invalid-schema",
		mdMsg: `
# Invalid configuration schema

The file is JSON but does not describe a configuration schema.

## Expected shape
A non-empty object. Each key maps to an object with a ` + "`type`" + ` field.
The type is one of ` + "`string`, `int`, `float`, `bool`, `password`" + `, or a
non-empty list of strings for a closed choice.

~~~json
{
  "name":    { "type": "string" },
  "port":    { "type": "int" },
  "token":   { "type": "password" },
  "region":  { "type": ["eu-west-1", "us-east-1"] }
}
~~~

## Things you can try:
- Run again with --verbose to see which rule failed`,
	}

	externalSourceFailedIssue = &Issue{
		id:    ExternalSourceFailedID,
		topic: "external-failure",
		mdMsg: `
# External config source failed

opsfill runs ` + "`ops -config -d`" + ` to learn which keys are already configured.
The command exited with an error, or printed something other than a JSON object.
Its stderr is shown unchanged.

## Things you can try:
- Run the command yourself:
~~~
$ ops -config -d
~~~

- Point opsfill at another binary:
~~~
$ OPS_CMD=/path/to/ops opsfill ./config.schema.json
$ opsfill --ops-cmd /path/to/ops ./config.schema.json
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id:    ConfigLoadFailedID,
		topic: "config-load-failed",
		mdMsg: `
# Failed to load opsfill configuration

The opsfill config file is not valid CUE, or holds a value opsfill does not accept.

## Accepted keys:
~~~cue
ops_cmd: "ops"
ui: {
	theme:      "default" | "charm" | "dracula" | "catppuccin" | "base16"
	accessible: bool
	verbose:    bool
}
output: format: "json" | "yaml" | "toml"
~~~

## Things you can try:
- Show the effective configuration:
~~~
$ opsfill config show
~~~

- Check OPSFILL_* environment variables, which override the file`,
	}

	operationCancelledIssue = &Issue{
		id:    OperationCancelledID,
		topic: "cancelled",
		mdMsg: `
# Operation cancelled

A prompt was cancelled with Ctrl+C or Esc. Nothing was printed and nothing
was written. Answers given before the cancellation are discarded.`,
	}

	issues = map[ID]*Issue{
		noConfigFileIssue.ID():         noConfigFileIssue,
		invalidJSONIssue.ID():          invalidJSONIssue,
		invalidSchemaIssue.ID():        invalidSchemaIssue,
		externalSourceFailedIssue.ID(): externalSourceFailedIssue,
		configLoadFailedIssue.ID():     configLoadFailedIssue,
		operationCancelledIssue.ID():   operationCancelledIssue,
	}
)

// Values returns every issue ordered by ID.
func Values() []*Issue {
	ids := maps.Keys(issues)
	slices.Sort(ids)
	out := make([]*Issue, len(ids))
	for i, id := range ids {
		out[i] = issues[id]
	}
	return out
}

// Get returns the issue for id, or nil.
func Get(id ID) *Issue {
	return issues[id]
}

// Lookup returns the issue named topic.
func Lookup(topic string) (*Issue, bool) {
	for _, i := range issues {
		if i.topic == topic {
			return i, true
		}
	}
	return nil, false
}

// Topics lists the topic names ordered by ID.
func Topics() []string {
	values := Values()
	topics := make([]string, len(values))
	for i, v := range values {
		topics[i] = v.topic
	}
	return topics
}
