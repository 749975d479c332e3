// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import "fmt"

// AnalysisError is a provider failure during text generation. Like a
// publish failure it is eligible for the caller's bounded-retry policy;
// the prompt itself is assumed valid.
type AnalysisError struct {
	Provider string
	Err      error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("ai generation via %s failed: %v", e.Provider, e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }
