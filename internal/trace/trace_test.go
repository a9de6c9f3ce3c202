package trace_test

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"

	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/trace"
)

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

var earth = dynamo.Body{
	Name:     "Earth",
	Mass:     5.972e24,
	Position: dynamo.Vector3{X: 1.496e11},
	Velocity: dynamo.Vector3{Y: 29780},
}

var _ = Describe("Writer", func() {
	var (
		buf *bytes.Buffer
		w   *trace.Writer
	)

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		w = trace.NewWriter(buf)
	})

	It("writes one block for a single body", func() {
		Expect(w.WriteStep([]dynamo.Body{earth}, 0)).To(Succeed())

		Expect(buf.String()).To(Equal(
			"# Step 0, Time: 0 s\n" +
				"Name Mass Px Py Pz Vx Vy Vz\n" +
				"     Earth 5.972000e+24 1.496000e+11 0.000000e+00 0.000000e+00 0.000000e+00 2.978000e+04 0.000000e+00\n" +
				"\n"))
		Expect(w.Steps()).To(Equal(1))
	})

	It("increments the step counter per call", func() {
		Expect(w.WriteStep([]dynamo.Body{earth}, 0)).To(Succeed())
		Expect(w.WriteStep([]dynamo.Body{earth}, 3600)).To(Succeed())

		Expect(strings.Count(buf.String(), "# Step")).To(Equal(2))
		Expect(w.Steps()).To(Equal(2))
	})

	It("switches header times to scientific after the first body line", func() {
		Expect(w.WriteStep([]dynamo.Body{earth}, 0)).To(Succeed())
		Expect(w.WriteStep([]dynamo.Body{earth}, 3600)).To(Succeed())
		Expect(w.WriteStep([]dynamo.Body{earth}, 7200)).To(Succeed())

		lines := strings.Split(buf.String(), "\n")
		Expect(lines[0]).To(Equal("# Step 0, Time: 0 s"))
		Expect(lines[4]).To(Equal("# Step 1, Time: 3.600000e+03 s"))
		Expect(lines[8]).To(Equal("# Step 2, Time: 7.200000e+03 s"))
	})

	It("keeps short header times while no body has been written", func() {
		Expect(w.WriteStep(nil, 0)).To(Succeed())
		Expect(w.WriteStep(nil, 3600)).To(Succeed())

		Expect(buf.String()).To(Equal(
			"# Step 0, Time: 0 s\n" + "Name Mass Px Py Pz Vx Vy Vz\n" + "\n" +
				"# Step 1, Time: 3600 s\n" + "Name Mass Px Py Pz Vx Vy Vz\n" + "\n"))
	})

	It("keeps long names intact", func() {
		long := earth
		long.Name = "Asteroid_12345"
		Expect(w.WriteStep([]dynamo.Body{long}, 0)).To(Succeed())
		Expect(buf.String()).To(ContainSubstring("\nAsteroid_12345 5.972000e+24"))
	})

	It("does not advance the counter when the write fails", func() {
		bad := trace.NewWriter(failingWriter{})
		err := bad.WriteStep([]dynamo.Body{earth}, 0)
		Expect(err).To(MatchError(ContainSubstring("disk full")))
		Expect(bad.Steps()).To(Equal(0))
	})

	It("writes through Create and Close", func() {
		path := filepath.Join(GinkgoT().TempDir(), "out.txt")
		fw, err := trace.Create(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(fw.WriteStep([]dynamo.Body{earth}, 0)).To(Succeed())
		Expect(fw.Close()).To(Succeed())

		frames, err := trace.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(frames).To(HaveLen(1))
	})

	It("fails to create a trace in a missing directory", func() {
		path := filepath.Join(GinkgoT().TempDir(), "missing", "out.txt")
		_, err := trace.Create(path)
		Expect(err).To(HaveOccurred())
		Expect(err).To(MatchError(HavePrefix("open trace: open ")))
		Expect(strings.Count(err.Error(), path)).To(Equal(1))
	})
})

var _ = DescribeTable("FormatTime",
	func(t float64, want string) {
		Expect(trace.FormatTime(t)).To(Equal(want))
	},
	Entry("zero", 0.0, "0"),
	Entry("one hour", 3600.0, "3600"),
	Entry("ten hours", 36000.0, "36000"),
	Entry("large", 3.6e6, "3.6e+06"),
	Entry("fractional", 1.5, "1.5"),
	Entry("year", 3.15576e7, "3.15576e+07"),
)

var _ = Describe("Read", func() {
	It("parses what the writer wrote", func() {
		var buf bytes.Buffer
		w := trace.NewWriter(&buf)
		sun := dynamo.Body{Name: "Sun", Mass: 1.989e30}
		moved := earth
		moved.Position.Y = 1.07208e8

		Expect(w.WriteStep([]dynamo.Body{sun, earth}, 0)).To(Succeed())
		Expect(w.WriteStep([]dynamo.Body{sun, moved}, 3600)).To(Succeed())

		frames, err := trace.Read(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(frames).To(HaveLen(2))
		Expect(frames[1].Step).To(Equal(1))
		Expect(frames[1].Time).To(Equal(3600.0))

		want := []dynamo.Body{sun, moved}
		Expect(cmp.Diff(want, frames[1].Bodies)).To(BeEmpty())

		got, ok := frames[1].Find("Earth")
		Expect(ok).To(BeTrue())
		Expect(got.Position.Y).To(Equal(1.07208e8))

		_, ok = frames[1].Find("Pluto")
		Expect(ok).To(BeFalse())
	})

	It("reports the line of a malformed body", func() {
		_, err := trace.Read(strings.NewReader("# Step 0, Time: 0 s\nName Mass Px Py Pz Vx Vy Vz\nEarth 1 2 3\n"))

		var pe *trace.ParseError
		Expect(errors.As(err, &pe)).To(BeTrue())
		Expect(pe.Line).To(Equal(3))
	})

	It("rejects bodies before any header", func() {
		_, err := trace.Read(strings.NewReader("Earth 1 2 3 4 5 6 7\n"))
		Expect(err).To(HaveOccurred())
	})

	It("returns no frames for empty input", func() {
		frames, err := trace.Read(strings.NewReader(""))
		Expect(err).NotTo(HaveOccurred())
		Expect(frames).To(BeEmpty())
	})
})
