package collector_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/mock"

	"github.com/nimaam/cpanel-exporter/pkg/collector"
	"github.com/nimaam/cpanel-exporter/pkg/cpanel/fakecpanel"
)

var _ = Describe("Databases", func() {
	var (
		fakeAPI *fakecpanel.FakeAPI
		c       *collector.Collector
	)

	BeforeEach(func() {
		fakeAPI = &fakecpanel.FakeAPI{}
		c = collector.New(fakeAPI, logger)
	})

	It("queries the engine's UAPI module", func() {
		fakeAPI.On("UAPI", mock.Anything, "alice", "Mysql", "list_databases", mock.Anything).Return(
			uapiResult(1, `[{"database":"alice_wp","disk_usage":54321}]`), nil,
		)
		fakeAPI.On("UAPI", mock.Anything, "alice", "Postgresql", "list_databases", mock.Anything).Return(
			uapiResult(1, `[]`), nil,
		)

		Expect(c.Databases(context.Background(), "alice", collector.MySQL)).To(HaveLen(1))
		Expect(c.Databases(context.Background(), "alice", collector.Postgres)).To(BeEmpty())
	})

	It("treats a missing feature as no data", func() {
		result := uapiResult(0, "")
		result.Errors = []string{`You do not have the feature "postgres".`}
		fakeAPI.On("UAPI", mock.Anything, "alice", "Postgresql", "list_databases", mock.Anything).Return(result, nil)

		Expect(c.Databases(context.Background(), "alice", collector.Postgres)).To(BeEmpty())
	})

	It("degrades to empty on a fetch failure", func() {
		fakeAPI.On("UAPI", mock.Anything, "alice", "Mysql", "list_databases", mock.Anything).Return(
			nil, errors.New("uapi failed"),
		)

		Expect(c.Databases(context.Background(), "alice", collector.MySQL)).To(BeEmpty())
	})
})

var _ = Describe("FormatDatabases", func() {
	It("emits one byte-denominated line per database with a leading db label", func() {
		records := recordsFromJSON(`[
			{"database":"alice_wp","disk_usage":54321},
			{"database":"alice_shop","disk_usage":"1048576"}
		]`)

		lines := renderedLines(collector.FormatDatabases(records, collector.MySQL, testLabels()))
		Expect(lines).To(Equal([]string{
			`cpanel_mysql_db_disk_usage{db="alice_wp",user="alice",ip="203.0.113.7"} 54321`,
			`cpanel_mysql_db_disk_usage{db="alice_shop",user="alice",ip="203.0.113.7"} 1048576`,
		}))
	})

	It("names the postgres engine in the metric", func() {
		records := recordsFromJSON(`[{"database":"alice_pg","disk_usage":8192}]`)

		lines := renderedLines(collector.FormatDatabases(records, collector.Postgres, testLabels()))
		Expect(lines).To(Equal([]string{
			`cpanel_postgres_db_disk_usage{db="alice_pg",user="alice",ip="203.0.113.7"} 8192`,
		}))
	})

	It("skips records without a database name or a parseable disk usage", func() {
		records := recordsFromJSON(`[
			{"disk_usage":54321},
			{"database":"alice_wp","disk_usage":"plenty"},
			{"database":"alice_wp"}
		]`)

		Expect(collector.FormatDatabases(records, collector.MySQL, testLabels())).To(BeEmpty())
	})
})
