// ABOUTME: Acceptance tests for the dump command
// ABOUTME: Verifies installed-mods.yml is written next to the mods directory
package acceptance

import (
	"github.com/modscmd/modscmd/test/helpers"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("dump", func() {
	var env *helpers.TestEnv

	BeforeEach(func() {
		env = helpers.NewTestEnv(binaryPath)
		env.AddStandardMods()
	})

	It("writes installed-mods.yml beside the mods directory", func() {
		result := env.Run("dump")

		Expect(result.ExitCode).To(Equal(0))
		Expect(result.Stdout).To(ContainSubstring("Saved list of 7 installed mods"))

		content := env.ReadFile("instance/installed-mods.yml")
		Expect(content).To(ContainSubstring("operating-system:"))
		Expect(content).To(ContainSubstring("mod-id: fabric-api"))
		Expect(content).To(ContainSubstring("mod-id: fabric-networking-api-v1"))
		Expect(content).To(ContainSubstring("authors: coderbot, IMS"))
	})

	It("prints the document with --output -", func() {
		result := env.Run("dump", "--output", "-")

		Expect(result.ExitCode).To(Equal(0))
		Expect(result.Stdout).To(HavePrefix("generated-by: modscmd"))
	})
})
