// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package subprocess

import "strings"

const (
	singleQuote        = "'"
	escapedSingleQuote = `'\''` // close quote, escaped quote, reopen quote
	tokenSeparator     = " "
)

// Quote returns token as a single POSIX shell word.
// The token is wrapped in single quotes and every single quote inside it is replaced by `'\''`.
// Nothing inside single quotes is expanded by the shell, so the result is literal for any input,
// including the empty string.
func Quote(token string) string {
	sb := strings.Builder{}
	sb.Grow(len(token) + 2) //nolint:mnd
	sb.WriteString(singleQuote)
	sb.WriteString(strings.ReplaceAll(token, singleQuote, escapedSingleQuote))
	sb.WriteString(singleQuote)

	return sb.String()
}

// Join quotes each token and joins them with a single space.
func Join(tokens ...string) string {
	quoted := make([]string, len(tokens))
	for i, token := range tokens {
		quoted[i] = Quote(token)
	}

	return strings.Join(quoted, tokenSeparator)
}
