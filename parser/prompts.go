package parser

import "fmt"

const purlFromSummaryPrompt = `You are a vulnerability analysis assistant. Read the vulnerability summary or
package name you are given and extract a single Package URL (PURL) that follows
the PURL specification.

PURL components:
- scheme: always "pkg"
- type: the package type, e.g. maven, npm, nuget, gem, pypi, rpm, deb, golang, cargo
- namespace: type specific prefix such as a Maven groupId or a GitHub owner (optional)
- name: the package name (required)
- version: the package version (optional)
- qualifiers: extra data such as os or arch (optional)
- subpath: a path inside the package (optional)

Output rules:
- Pick the most appropriate known PURL type.
- If a valid PURL can be built, answer only with
  {"string": "pkg:type/namespace/name@version?qualifiers#subpath"}
- If no valid PURL can be built or the type is unknown, answer only with {}
- Do not add explanations, markdown or any other text.
- Do not invent values that are not in the input.`

const versionsFromSummaryPrompt = `You are a vulnerability analysis assistant. Read the vulnerability summary and
extract the affected and fixed versions of the software.

Affected versions use one of these forms:
- >=<version>, <=<version>, ><version>, <<version>
- a range written as <version1> - <version2>

Fixed versions use one of these forms:
- >=<version>, <=<version>, ><version>, <<version>, or a bare <version>
- "Not Fixed" when the summary names no fixed version

Consider the different ways a summary can describe affected and fixed versions.
Extract only version information.

Answer only with a JSON object of this shape:
{"affected_versions": ["<constraint>", "<constraint>"], "fixed_versions": ["<constraint>"]}

Example:
{"affected_versions": [">=1.2.3", "<2.0.0"], "fixed_versions": ["2.0.0"]}`

const purlFromCPEPrompt = `You are a vulnerability analysis assistant. Read the CPE or known affected
software configuration you are given and extract a single Package URL (PURL)
that follows the PURL specification.

PURL format: pkg:type/namespace/name@version
- type: the package type, e.g. maven, npm, pypi, gem, nuget, rpm, deb, docker
- namespace: organization or group, only when present in the input
- name: the package name
- version: the package version, when available

Output rules:
- Use only data that can be read from the input.
- Answer only with {"string": "pkg:type/namespace/name@version"}
- If a PURL cannot be built reliably, answer only with {}
- Do not add explanations, markdown or any other text.
- Do not invent values that are not in the input.`

func summaryPrompt(summary string) string {
	return fmt.Sprintf("Vulnerability Summary:\n%s", summary)
}

func cpePrompt(cpe string) string {
	return fmt.Sprintf("Vulnerability Known Affected Software Configurations CPE:\n%s", cpe)
}
