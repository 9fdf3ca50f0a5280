package forum_test

import (
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/threadmapco/threadmap/pkg/forum"
)

var _ = Describe("DecodeThreads", func() {
	Context("with a well-formed dataset", func() {
		dataset := []byte(`[
			{
				"url": "https://forum.example/t/1",
				"title": "Launch discussion",
				"scrape_time": "2025-03-01T12:00:00Z",
				"posts": [
					{
						"id": "p1",
						"author": "alice",
						"time": "2025-02-01T09:00:00Z",
						"content": "First impressions are good.",
						"sentiment": 0.4,
						"keywords": ["launch", "impressions"]
					},
					{
						"id": "p2",
						"author": "bob",
						"time": "2025-02-01T10:30:00",
						"content": "Agreed with alice.",
						"sentiment": 0.7,
						"quoted_user": "alice"
					}
				]
			},
			{
				"url": "https://forum.example/t/2",
				"title": "Empty thread",
				"posts": []
			}
		]`)

		It("decodes every thread and post", func() {
			threads, err := forum.DecodeThreads(dataset)
			Expect(err).NotTo(HaveOccurred())
			Expect(threads).To(HaveLen(2))
			Expect(threads[0].Posts).To(HaveLen(2))
			Expect(threads[1].Posts).To(BeEmpty())
		})

		It("parses RFC 3339 and zone-less timestamps", func() {
			threads, err := forum.DecodeThreads(dataset)
			Expect(err).NotTo(HaveOccurred())

			first := threads[0].Posts[0]
			Expect(first.Time).To(Equal(time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)))

			second := threads[0].Posts[1]
			Expect(second.Time.Hour()).To(Equal(10))
			Expect(second.Time.Minute()).To(Equal(30))
		})

		It("carries sentiment, keywords, and quoted users through", func() {
			threads, _ := forum.DecodeThreads(dataset)

			Expect(threads[0].Posts[0].Sentiment).To(Equal(0.4))
			Expect(threads[0].Posts[0].Keywords).To(Equal([]string{"launch", "impressions"}))
			Expect(threads[0].Posts[1].QuotedUser).To(Equal("alice"))
		})
	})

	Context("with malformed input", func() {
		It("rejects content that is not a JSON array", func() {
			_, err := forum.DecodeThreads([]byte(`{"not": "an array"}`))

			var malformed *forum.MalformedInputError
			Expect(errors.As(err, &malformed)).To(BeTrue())
			Expect(malformed.Error()).To(ContainSubstring("not a JSON array"))
		})

		It("rejects a post without sentiment and names the record", func() {
			dataset := []byte(`[{
				"title": "Broken",
				"posts": [{"author": "alice", "time": "2025-02-01T09:00:00Z", "content": "hi"}]
			}]`)

			_, err := forum.DecodeThreads(dataset)

			var malformed *forum.MalformedInputError
			Expect(errors.As(err, &malformed)).To(BeTrue())
			Expect(malformed.Reason).To(Equal("missing sentiment"))
			Expect(malformed.Record).To(ContainSubstring("thread 0"))
			Expect(malformed.Record).To(ContainSubstring("post 0"))
		})

		It("rejects a post without an author", func() {
			dataset := []byte(`[{
				"posts": [{"time": "2025-02-01T09:00:00Z", "sentiment": 0.1}]
			}]`)

			_, err := forum.DecodeThreads(dataset)
			Expect(err).To(MatchError(ContainSubstring("missing author")))
		})

		It("rejects an unparsable timestamp", func() {
			dataset := []byte(`[{
				"posts": [{"author": "alice", "time": "last tuesday", "sentiment": 0.1}]
			}]`)

			_, err := forum.DecodeThreads(dataset)
			Expect(err).To(MatchError(ContainSubstring(`unparsable time "last tuesday"`)))
		})

		It("accepts an explicit zero sentiment", func() {
			dataset := []byte(`[{
				"posts": [{"author": "alice", "time": "2025-02-01T09:00:00Z", "sentiment": 0}]
			}]`)

			threads, err := forum.DecodeThreads(dataset)
			Expect(err).NotTo(HaveOccurred())
			Expect(threads[0].Posts[0].Sentiment).To(BeZero())
		})
	})
})

var _ = Describe("Fingerprint", func() {
	It("is deterministic", func() {
		Expect(forum.Fingerprint([]byte("abc"))).To(Equal(forum.Fingerprint([]byte("abc"))))
	})

	It("differs for different content", func() {
		Expect(forum.Fingerprint([]byte("abc"))).NotTo(Equal(forum.Fingerprint([]byte("abd"))))
	})

	It("is a 256-bit hex digest", func() {
		Expect(forum.Fingerprint([]byte("abc"))).To(HaveLen(64))
	})
})

var _ = Describe("DetectKeyword", func() {
	It("extracts the keyword from the scraper naming convention", func() {
		keyword, ok := forum.DetectKeyword("data/golang_scraped_data.json")
		Expect(ok).To(BeTrue())
		Expect(keyword).To(Equal("golang"))
	})

	It("rejects other filenames", func() {
		_, ok := forum.DetectKeyword("dataset.json")
		Expect(ok).To(BeFalse())
	})

	It("rejects a bare suffix with no keyword", func() {
		_, ok := forum.DetectKeyword("_scraped_data.json")
		Expect(ok).To(BeFalse())
	})
})
