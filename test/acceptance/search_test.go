// ABOUTME: Acceptance tests for the search command
// ABOUTME: Tests fuzzy ranking, trailing page numbers and output formats
package acceptance

import (
	"encoding/json"

	"github.com/modscmd/modscmd/test/helpers"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("search", func() {
	var env *helpers.TestEnv

	BeforeEach(func() {
		env = helpers.NewTestEnv(binaryPath)
		env.AddStandardMods()
	})

	It("ranks an exact name match first", func() {
		result := env.Run("search", "sodium", "--format", "json")
		Expect(result.ExitCode).To(Equal(0))

		var output struct {
			TotalMatches int `json:"totalMatches"`
			Items        []struct {
				ID    string `json:"id"`
				Score int    `json:"score"`
				Spans []struct {
					Start int `json:"start"`
					End   int `json:"end"`
				} `json:"spans"`
			} `json:"items"`
		}
		Expect(json.Unmarshal([]byte(result.Stdout), &output)).To(Succeed())
		Expect(output.Items).NotTo(BeEmpty())
		Expect(output.Items[0].ID).To(Equal("sodium"))
		Expect(output.Items[0].Score).To(BeNumerically(">", 0))
		Expect(output.Items[0].Spans).NotTo(BeEmpty())
	})

	It("searches child mods too", func() {
		result := env.Run("search", "networking")

		Expect(result.ExitCode).To(Equal(0))
		Expect(result.Stdout).To(ContainSubstring("Fabric Networking API (v1)"))
	})

	It("treats a trailing number as the page", func() {
		result := env.Run("search", "fabric", "2", "--page-size", "1")

		Expect(result.ExitCode).To(Equal(0))
		Expect(result.Stdout).To(ContainSubstring("results for query: fabric"))
		Expect(result.Stdout).To(MatchRegexp(`Page 2/\d+`))
		Expect(result.Stdout).To(ContainSubstring("modscmd search fabric 1 --page-size 1"))
	})

	It("treats a lone number as the query", func() {
		result := env.Run("search", "7")

		Expect(result.ExitCode).To(Equal(0))
		Expect(result.Stdout).To(ContainSubstring("No results for query '7'."))
	})

	It("reports queries without matches", func() {
		result := env.Run("search", "zzqx")

		Expect(result.ExitCode).To(Equal(0))
		Expect(result.Stdout).To(ContainSubstring("No results for query 'zzqx'."))
	})

	It("renders a table", func() {
		result := env.Run("search", "iris", "--format", "table")

		Expect(result.ExitCode).To(Equal(0))
		Expect(result.Stdout).To(ContainSubstring("SCORE"))
		Expect(result.Stdout).To(ContainSubstring("1.6.11"))
	})

	It("rejects unknown formats", func() {
		result := env.Run("search", "iris", "--format", "xml")

		Expect(result.ExitCode).To(Equal(1))
		Expect(result.Stderr).To(ContainSubstring("invalid --format"))
	})
})
