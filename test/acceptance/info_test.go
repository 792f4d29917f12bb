// ABOUTME: Acceptance tests for the info command
// ABOUTME: Tests mod details, child pages, the child tree and unknown ids
package acceptance

import (
	"github.com/modscmd/modscmd/test/helpers"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("info", func() {
	var env *helpers.TestEnv

	BeforeEach(func() {
		env = helpers.NewTestEnv(binaryPath)
		env.AddStandardMods()
	})

	It("shows mod details", func() {
		result := env.Run("info", "iris")

		Expect(result.ExitCode).To(Equal(0))
		Expect(result.Stdout).To(ContainSubstring("Mod ID: iris"))
		Expect(result.Stdout).To(ContainSubstring("Authors: coderbot, IMS"))
		Expect(result.Stdout).To(ContainSubstring("Only runs on the client."))
		Expect(result.Stdout).To(ContainSubstring("homepage: https://irisshaders.dev"))
	})

	It("previews children with a hint", func() {
		result := env.Run("info", "fabric-api")

		Expect(result.ExitCode).To(Equal(0))
		Expect(result.Stdout).To(ContainSubstring("Fabric API Base, Fabric Networking API (v1)"))
		Expect(result.Stdout).To(ContainSubstring("modscmd info fabric-api children"))
	})

	It("shows the child tree", func() {
		result := env.Run("info", "fabric-api", "--tree")

		Expect(result.ExitCode).To(Equal(0))
		Expect(result.Stdout).To(ContainSubstring("├── Fabric API Base (fabric-api-base)"))
		Expect(result.Stdout).To(ContainSubstring("└── Fabric Networking API (v1) (fabric-networking-api-v1)"))
	})

	It("pages through children", func() {
		result := env.Run("info", "fabric-api", "children", "2", "--page-size", "1")

		Expect(result.ExitCode).To(Equal(0))
		Expect(result.Stdout).To(ContainSubstring("Fabric Networking API (v1)"))
		Expect(result.Stdout).To(ContainSubstring("Page 2/2"))
	})

	It("reports unknown ids without failing", func() {
		result := env.Run("info", "optifine")

		Expect(result.ExitCode).To(Equal(0))
		Expect(result.Stdout).To(ContainSubstring("No mod with id 'optifine'"))
	})
})
