// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package main

import "github.com/creachadair/jevents/cmd/jevents/cmd"

func main() {
	cmd.Execute()
}
