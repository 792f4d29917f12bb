// ABOUTME: Acceptance tests for the shell command
// ABOUTME: Pipes chat-style command lines into the binary
package acceptance

import (
	"github.com/modscmd/modscmd/test/helpers"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("shell", func() {
	var env *helpers.TestEnv

	BeforeEach(func() {
		env = helpers.NewTestEnv(binaryPath)
		env.AddStandardMods()
	})

	It("answers chat-style commands", func() {
		result := env.RunWithInput("mods\nmods search lithium\nmods info sodium\n", "shell")

		Expect(result.ExitCode).To(Equal(0))
		Expect(result.Stdout).To(ContainSubstring("Loaded Mods (7 total, 5 top-level)"))
		Expect(result.Stdout).To(ContainSubstring("results for query: lithium"))
		Expect(result.Stdout).To(ContainSubstring("Mod ID: sodium"))
	})

	It("uses the configured label", func() {
		env.WriteConfig("label: modlist\npage_size: 2\n")

		result := env.RunWithInput("modlist page 2\n", "shell")

		Expect(result.ExitCode).To(Equal(0))
		Expect(result.Stdout).To(ContainSubstring("Page 2/3"))
		Expect(result.Stdout).To(ContainSubstring("modlist page 3"))
	})

	It("keeps going after a bad line", func() {
		result := env.RunWithInput("mods page\nmods info iris\n", "shell")

		Expect(result.ExitCode).To(Equal(0))
		Expect(result.Stdout).To(ContainSubstring("expected one page number"))
		Expect(result.Stdout).To(ContainSubstring("Mod ID: iris"))
	})
})
