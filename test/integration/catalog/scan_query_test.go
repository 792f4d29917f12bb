// ABOUTME: Integration tests scanning fake jars and querying the resulting snapshot
// ABOUTME: Covers ranking over scanned records, hierarchy queries and live snapshot swaps
package catalog_test

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/modscmd/modscmd/internal/catalog"
	"github.com/modscmd/modscmd/internal/modscan"
	"github.com/modscmd/modscmd/internal/modscan/jartest"
	"github.com/modscmd/modscmd/internal/watch"
)

var _ = Describe("scanning and querying", func() {
	var (
		modsDir string
		scanner *modscan.Scanner
		engine  *catalog.Engine
	)

	writeMod := func(file string, m jartest.Mod) {
		Expect(jartest.Write(filepath.Join(modsDir, file), m)).To(Succeed())
	}

	scan := func() *catalog.Snapshot {
		s, err := scanner.Scan(context.Background(), modsDir)
		Expect(err).NotTo(HaveOccurred())
		return s
	}

	BeforeEach(func() {
		modsDir = GinkgoT().TempDir()
		scanner = modscan.NewScanner(modscan.Options{})
		engine = catalog.NewEngine(nil)

		module := map[string]any{"fabric-api:module-lifecycle": "stable"}
		writeMod("fabric-api.jar", jartest.Mod{
			ID: "fabric-api", Name: "Fabric API", Version: "0.92.0",
			Nested: []jartest.Mod{
				{ID: "fabric-api-base", Name: "Fabric API Base", Version: "0.4.31", Custom: module},
				{ID: "fabric-lifecycle-events-v1", Name: "Fabric Lifecycle Events (v1)", Version: "2.2.22", Custom: module},
			},
		})
		writeMod("fabric-loader.jar", jartest.Mod{ID: "fabricloader", Name: "Fabric Loader", Version: "0.14.22"})
		writeMod("sodium.jar", jartest.Mod{ID: "sodium", Name: "Sodium", Version: "0.5.3", Environment: "client"})
		writeMod("create.jar", jartest.Mod{Loader: jartest.Forge, ID: "create", Name: "Create", Version: "0.5.1",
			Description: "Aesthetic technology that empowers the player"})
	})

	It("ranks scanned records by fuzzy score", func() {
		s := scan()

		result, err := engine.Execute(s, catalog.Query{Kind: catalog.SearchText, Text: "fab", Page: 1, PageSize: 10})
		Expect(err).NotTo(HaveOccurred())

		ids := []string{}
		for _, r := range result.Records() {
			ids = append(ids, r.ID)
		}
		Expect(ids).To(ContainElements("fabric-api", "fabricloader", "fabric-api-base", "fabric-lifecycle-events-v1"))
		Expect(ids).NotTo(ContainElement("sodium"))
		for i := 1; i < len(result.Items); i++ {
			Expect(result.Items[i-1].Score).To(BeNumerically(">=", result.Items[i].Score))
		}
	})

	It("keeps parents before their children in listing order", func() {
		s := scan()

		result, err := engine.Execute(s, catalog.Query{Kind: catalog.ListAll, Page: 1, PageSize: 100})
		Expect(err).NotTo(HaveOccurred())

		pos := map[string]int{}
		for i, r := range result.Records() {
			pos[r.ID] = i
		}
		Expect(pos["fabric-api"]).To(BeNumerically("<", pos["fabric-api-base"]))
		Expect(pos["fabric-api"]).To(BeNumerically("<", pos["fabric-lifecycle-events-v1"]))
	})

	It("answers hierarchy queries", func() {
		s := scan()

		top, err := engine.Execute(s, catalog.Query{Kind: catalog.ListAll, Page: 1, PageSize: 100, TopLevelOnly: true})
		Expect(err).NotTo(HaveOccurred())
		Expect(top.TotalMatches).To(Equal(4))

		children, err := engine.Execute(s, catalog.Query{Kind: catalog.ListChildren, Text: "fabric-api", Page: 1, PageSize: 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(children.TotalMatches).To(Equal(2))
		Expect(children.PageCount).To(Equal(2))
	})

	It("reads forge manifests", func() {
		s := scan()

		result, err := engine.Execute(s, catalog.Query{Kind: catalog.GetByID, Text: "create", Page: 1, PageSize: 8})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Items).To(HaveLen(1))
		Expect(result.Items[0].Record.Version).To(Equal("0.5.1"))
		Expect(result.Items[0].Record.Type).To(Equal("forge"))
	})

	It("serves consistent snapshots while the mods directory changes", func() {
		holder := catalog.NewHolder(scan())
		reload := watch.Reloader(func(ctx context.Context) (*catalog.Snapshot, error) {
			return scanner.Scan(ctx, modsDir)
		}, holder, nil, nil)

		var wg sync.WaitGroup
		stop := make(chan struct{})
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer GinkgoRecover()
				defer wg.Done()
				for {
					select {
					case <-stop:
						return
					default:
					}
					s := holder.Load()
					result, err := engine.Execute(s, catalog.Query{Kind: catalog.ListAll, Page: 1, PageSize: 100})
					Expect(err).NotTo(HaveOccurred())
					Expect(result.TotalMatches).To(Equal(s.Len()))
				}
			}()
		}

		writeMod("iris.jar", jartest.Mod{ID: "iris", Name: "Iris", Version: "1.6.11"})
		Expect(reload(context.Background(), []string{"iris.jar"})).To(Succeed())
		time.Sleep(20 * time.Millisecond)
		close(stop)
		wg.Wait()

		_, ok := holder.Load().Lookup("iris")
		Expect(ok).To(BeTrue())
	})
})
