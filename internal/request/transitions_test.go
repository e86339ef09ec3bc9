package request_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/maintenance-management/internal/request"
)

var _ = Describe("Status transitions", func() {
	DescribeTable("IsValidTransition",
		func(from, to string, expected bool) {
			Expect(request.IsValidTransition(from, to)).To(Equal(expected))
		},
		Entry("NEW to IN_PROGRESS", request.StatusNew, request.StatusInProgress, true),
		Entry("NEW to SCRAP", request.StatusNew, request.StatusScrap, true),
		Entry("NEW to REPAIRED skips work", request.StatusNew, request.StatusRepaired, false),
		Entry("IN_PROGRESS to REPAIRED", request.StatusInProgress, request.StatusRepaired, true),
		Entry("IN_PROGRESS to SCRAP", request.StatusInProgress, request.StatusScrap, true),
		Entry("IN_PROGRESS back to NEW", request.StatusInProgress, request.StatusNew, false),
		Entry("REPAIRED to SCRAP", request.StatusRepaired, request.StatusScrap, true),
		Entry("REPAIRED back to IN_PROGRESS", request.StatusRepaired, request.StatusInProgress, false),
		Entry("SCRAP is terminal (to NEW)", request.StatusScrap, request.StatusNew, false),
		Entry("SCRAP is terminal (to IN_PROGRESS)", request.StatusScrap, request.StatusInProgress, false),
		Entry("SCRAP is terminal (to REPAIRED)", request.StatusScrap, request.StatusRepaired, false),
		Entry("self transition NEW", request.StatusNew, request.StatusNew, false),
		Entry("self transition IN_PROGRESS", request.StatusInProgress, request.StatusInProgress, false),
		Entry("self transition REPAIRED", request.StatusRepaired, request.StatusRepaired, false),
		Entry("self transition SCRAP", request.StatusScrap, request.StatusScrap, false),
		Entry("unknown source status", "ARCHIVED", request.StatusScrap, false),
	)
})
