// ABOUTME: Acceptance tests for configuration loading and config show
// ABOUTME: Covers default file creation, env overrides and invalid files
package acceptance

import (
	"os"

	"github.com/modscmd/modscmd/test/helpers"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("config", func() {
	var env *helpers.TestEnv

	BeforeEach(func() {
		env = helpers.NewTestEnv(binaryPath)
	})

	It("writes a default config file on first run", func() {
		result := env.Run("config", "show")

		Expect(result.ExitCode).To(Equal(0))
		Expect(env.ConfigFile).To(BeAnExistingFile())
		Expect(result.Stdout).To(ContainSubstring("page_size: 8"))
		Expect(result.Stdout).To(ContainSubstring("MODSCMD_MODS_DIR"))
	})

	It("shows values from the file", func() {
		env.WriteConfig("page_size: 3\ncolor_scheme: mono\n")

		result := env.Run("config", "show")

		Expect(result.ExitCode).To(Equal(0))
		Expect(result.Stdout).To(ContainSubstring("page_size: 3"))
		Expect(result.Stdout).To(ContainSubstring("color_scheme: mono"))
	})

	It("rejects invalid values with guidance", func() {
		env.WriteConfig("page_size: 0\n")

		result := env.Run("list")

		Expect(result.ExitCode).To(Equal(1))
		Expect(result.Stderr).To(ContainSubstring("Could not load configuration"))
		Expect(result.Stderr).To(ContainSubstring("page_size must be at least 1"))
	})

	It("keeps an existing file untouched", func() {
		env.WriteConfig("label: modlist\n")

		env.Run("config", "show")

		data, err := os.ReadFile(env.ConfigFile)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal("label: modlist\n"))
	})
})
