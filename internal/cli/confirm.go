package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// confirm prompts for a yes/no answer on stdin. Anything other than an
// explicit yes counts as no.
func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)

	reader := bufio.NewReader(os.Stdin)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))

	return response == "y" || response == "yes"
}
