// ABOUTME: Acceptance tests for the list command
// ABOUTME: Tests paging, footers and empty mods directories with the real binary
package acceptance

import (
	"github.com/modscmd/modscmd/test/helpers"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("list", func() {
	var env *helpers.TestEnv

	BeforeEach(func() {
		env = helpers.NewTestEnv(binaryPath)
	})

	Describe("with no mods installed", func() {
		It("says nothing is loaded", func() {
			result := env.Run("list")

			Expect(result.ExitCode).To(Equal(0))
			Expect(result.Stdout).To(ContainSubstring("No mods are loaded."))
		})
	})

	Describe("with installed mods", func() {
		BeforeEach(func() {
			env.AddStandardMods()
		})

		It("lists top-level mods with child counts", func() {
			result := env.Run("list")

			Expect(result.ExitCode).To(Equal(0))
			Expect(result.Stdout).To(ContainSubstring("Loaded Mods (7 total, 5 top-level)"))
			Expect(result.Stdout).To(ContainSubstring("Fabric API (fabric-api) v0.92.0+1.20.1 (2 child mods)"))
			Expect(result.Stdout).To(ContainSubstring("Mod Menu (modmenu)"))
			Expect(result.Stdout).NotTo(ContainSubstring("Fabric API Base"))
			Expect(result.Stdout).NotTo(ContainSubstring("Page 1/1"))
		})

		It("lists every mod with --all", func() {
			result := env.Run("list", "--all")

			Expect(result.ExitCode).To(Equal(0))
			Expect(result.Stdout).To(ContainSubstring("Fabric API Base (fabric-api-base)"))
		})

		It("pages with navigation hints", func() {
			result := env.Run("list", "2", "--page-size", "2")

			Expect(result.ExitCode).To(Equal(0))
			Expect(result.Stdout).To(ContainSubstring("Page 2/3"))
			Expect(result.Stdout).To(ContainSubstring("modscmd list 1 --page-size 2"))
			Expect(result.Stdout).To(ContainSubstring("modscmd list 3 --page-size 2"))
		})

		It("reports pages past the end", func() {
			result := env.Run("list", "4", "--page-size", "2")

			Expect(result.ExitCode).To(Equal(0))
			Expect(result.Stdout).To(ContainSubstring("Page 4 is out of range! There are only 3 pages of results."))
		})

		It("rejects page zero", func() {
			result := env.Run("list", "0")

			Expect(result.ExitCode).To(Equal(1))
			Expect(result.Stderr).To(ContainSubstring("page must be at least 1"))
		})

		It("filters by environment", func() {
			result := env.Run("list", "--env", "client", "--format", "json")

			Expect(result.ExitCode).To(Equal(0))
			Expect(result.Stdout).To(ContainSubstring(`"id": "iris"`))
			Expect(result.Stdout).NotTo(ContainSubstring(`"id": "lithium"`))
		})

		It("honours hidden mod ids from the config file", func() {
			env.WriteConfig("hidden_mod_ids:\n  - modmenu\n")

			result := env.Run("list")

			Expect(result.ExitCode).To(Equal(0))
			Expect(result.Stdout).NotTo(ContainSubstring("Mod Menu"))
		})
	})

	Describe("with a missing mods directory", func() {
		It("explains how to point at the right directory", func() {
			result := env.Run("--mods-dir", "/definitely/not/here", "list")

			Expect(result.ExitCode).To(Equal(1))
			Expect(result.Stderr).To(ContainSubstring("Mods directory not found"))
			Expect(result.Stderr).To(ContainSubstring("--mods-dir"))
		})
	})

	Describe("with a broken jar", func() {
		It("skips it and lists the rest", func() {
			env.AddStandardMods()
			env.AddFile("broken.jar", []byte("not a zip"))

			result := env.Run("list")

			Expect(result.ExitCode).To(Equal(0))
			Expect(result.Stdout).To(ContainSubstring("5 top-level"))
		})
	})
})
