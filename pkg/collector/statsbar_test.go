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

var _ = Describe("GeneralStats", func() {
	var (
		fakeAPI *fakecpanel.FakeAPI
		c       *collector.Collector
	)

	BeforeEach(func() {
		fakeAPI = &fakecpanel.FakeAPI{}
		c = collector.New(fakeAPI, logger)
	})

	It("queries the fixed StatsBar statistic set", func() {
		fakeAPI.On("UAPI", mock.Anything, "alice", "StatsBar", "get_stats",
			mock.MatchedBy(func(args []string) bool {
				return len(args) == 1 &&
					args[0] == "display=bandwidthusage|diskusage|addondomains|autoresponders|"+
						"cachedlistdiskusage|cachedmysqldiskusage|cpanelversion|emailaccounts|"+
						"emailfilters|emailforwarders|filesusage|ftpaccounts|hostingpackage|"+
						"hostname|kernelversion|machinetype|operatingsystem|mailinglists|"+
						"mysqldatabases|mysqldiskusage|mysqlversion|parkeddomains|perlversion|"+
						"phpversion|shorthostname|sqldatabases|subdomains|cachedpostgresdiskusage|"+
						"postgresqldatabases|postgresdiskusage"
			}),
		).Return(uapiResult(1, `[{"name":"diskusage","value":100}]`), nil)

		stats, err := c.GeneralStats(context.Background(), "alice")
		Expect(err).ToNot(HaveOccurred())
		Expect(stats).To(HaveLen(1))
	})

	It("propagates fetch failures", func() {
		fakeAPI.On("UAPI", mock.Anything, "alice", "StatsBar", "get_stats", mock.Anything).Return(
			nil, errors.New("uapi failed"),
		)

		_, err := c.GeneralStats(context.Background(), "alice")
		Expect(err).To(MatchError("uapi failed"))
	})

	It("propagates envelope errors", func() {
		result := uapiResult(0, "")
		result.Errors = []string{"account suspended"}
		fakeAPI.On("UAPI", mock.Anything, "alice", "StatsBar", "get_stats", mock.Anything).Return(result, nil)

		_, err := c.GeneralStats(context.Background(), "alice")
		Expect(err).To(HaveOccurred())
	})

	It("returns no records for a null data payload", func() {
		fakeAPI.On("UAPI", mock.Anything, "alice", "StatsBar", "get_stats", mock.Anything).Return(
			uapiResult(1, ""), nil,
		)

		stats, err := c.GeneralStats(context.Background(), "alice")
		Expect(err).ToNot(HaveOccurred())
		Expect(stats).To(BeEmpty())
	})
})

var _ = Describe("FormatGeneralStats", func() {
	It("emits one line per numeric statistic plus the info marker", func() {
		stats := recordsFromJSON(`[
			{"name":"emailaccounts","value":3},
			{"name":"subdomains","value":"12"}
		]`)

		lines := renderedLines(collector.FormatGeneralStats(stats, testLabels()))
		Expect(lines).To(Equal([]string{
			`cpanel_emailaccounts{user="alice",ip="203.0.113.7"} 3`,
			`cpanel_subdomains{user="alice",ip="203.0.113.7"} 12`,
			`cpanel_info{user="alice",ip="203.0.113.7"} 1`,
		}))
	})

	It("prefers the _count field over value", func() {
		stats := recordsFromJSON(`[{"name":"mysqldatabases","_count":4,"value":"lots"}]`)

		lines := renderedLines(collector.FormatGeneralStats(stats, testLabels()))
		Expect(lines[0]).To(Equal(`cpanel_mysqldatabases{user="alice",ip="203.0.113.7"} 4`))
	})

	It("skips non-numeric values and nameless records", func() {
		stats := recordsFromJSON(`[
			{"name":"phpversion","value":"8.1.2"},
			{"value":100},
			{"name":"","value":100},
			{"name":"autoresponders","value":true},
			{"name":"emailaccounts","value":2}
		]`)

		lines := renderedLines(collector.FormatGeneralStats(stats, testLabels()))
		Expect(lines).To(Equal([]string{
			`cpanel_emailaccounts{user="alice",ip="203.0.113.7"} 2`,
			`cpanel_info{user="alice",ip="203.0.113.7"} 1`,
		}))
	})

	It("converts GB and MB units to bytes", func() {
		stats := recordsFromJSON(`[
			{"name":"bandwidthusage","value":2,"units":"GB"},
			{"name":"cachedlistdiskusage","value":5,"units":"MB"}
		]`)

		lines := renderedLines(collector.FormatGeneralStats(stats, testLabels()))
		Expect(lines[0]).To(HaveSuffix(" 2147483648"))
		Expect(lines[1]).To(HaveSuffix(" 5242880"))
	})

	It("never scales the database disk usage statistics", func() {
		stats := recordsFromJSON(`[
			{"name":"mysqldiskusage","value":123456,"units":"MB"},
			{"name":"cachedmysqldiskusage","value":123456,"units":"GB"},
			{"name":"postgresdiskusage","value":123456,"units":"MB"},
			{"name":"cachedpostgresdiskusage","value":123456,"units":"GB"}
		]`)

		lines := renderedLines(collector.FormatGeneralStats(stats, testLabels()))
		for _, line := range lines[:4] {
			Expect(line).To(HaveSuffix(" 123456"))
		}
	})

	Describe("derived disk and file usage", func() {
		It("emits free, free percent and percent lines for diskusage", func() {
			stats := recordsFromJSON(`[
				{"name":"diskusage","value":100000000,"percent":"40","_max":"200"}
			]`)

			lines := renderedLines(collector.FormatGeneralStats(stats, testLabels()))
			Expect(lines).To(Equal([]string{
				`cpanel_free_diskusage{user="alice",ip="203.0.113.7"} 109715200`,
				`cpanel_free_diskusage_percent{user="alice",ip="203.0.113.7"} 60`,
				`cpanel_diskusage_percent{user="alice",ip="203.0.113.7"} 40`,
				`cpanel_diskusage{user="alice",ip="203.0.113.7"} 100000000`,
				`cpanel_info{user="alice",ip="203.0.113.7"} 1`,
			}))
		})

		It("treats the filesusage maximum as a raw count", func() {
			stats := recordsFromJSON(`[
				{"name":"filesusage","value":1500,"percent":75,"_max":"2000"}
			]`)

			lines := renderedLines(collector.FormatGeneralStats(stats, testLabels()))
			Expect(lines[0]).To(Equal(`cpanel_free_filesusage{user="alice",ip="203.0.113.7"} 500`))
			Expect(lines[1]).To(Equal(`cpanel_free_filesusage_percent{user="alice",ip="203.0.113.7"} 25`))
			Expect(lines[2]).To(Equal(`cpanel_filesusage_percent{user="alice",ip="203.0.113.7"} 75`))
		})

		It("suppresses the derived lines for an unlimited maximum, any case", func() {
			for _, max := range []string{"unlimited", "UNLIMITED", "Unlimited"} {
				stats := recordsFromJSON(`[
					{"name":"diskusage","value":100000000,"percent":"40","_max":"` + max + `"}
				]`)

				lines := renderedLines(collector.FormatGeneralStats(stats, testLabels()))
				Expect(lines).To(HaveLen(2))
				Expect(lines[0]).To(Equal(`cpanel_diskusage{user="alice",ip="203.0.113.7"} 100000000`))
			}
		})

		It("suppresses the derived lines on a conversion failure but keeps the base line", func() {
			stats := recordsFromJSON(`[
				{"name":"diskusage","value":100000000,"percent":"40","_max":"two hundred"}
			]`)

			lines := renderedLines(collector.FormatGeneralStats(stats, testLabels()))
			Expect(lines).To(HaveLen(2))
			Expect(lines[0]).To(Equal(`cpanel_diskusage{user="alice",ip="203.0.113.7"} 100000000`))
		})

		It("suppresses the derived lines for a non-string maximum", func() {
			stats := recordsFromJSON(`[
				{"name":"diskusage","value":100000000,"percent":"40","_max":200}
			]`)

			lines := renderedLines(collector.FormatGeneralStats(stats, testLabels()))
			Expect(lines).To(HaveLen(2))
		})
	})

	It("emits only the info marker for an empty record list", func() {
		lines := renderedLines(collector.FormatGeneralStats(nil, testLabels()))
		Expect(lines).To(Equal([]string{`cpanel_info{user="alice",ip="203.0.113.7"} 1`}))
	})
})
