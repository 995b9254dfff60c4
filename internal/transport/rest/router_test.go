package rest_test

import (
	"log/slog"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/talenthub/talent-hub/internal/auth"
	"github.com/talenthub/talent-hub/internal/certificate"
	"github.com/talenthub/talent-hub/internal/course"
	"github.com/talenthub/talent-hub/internal/notification"
	"github.com/talenthub/talent-hub/internal/project"
	"github.com/talenthub/talent-hub/internal/realtime"
	"github.com/talenthub/talent-hub/internal/request"
	"github.com/talenthub/talent-hub/internal/transport/rest"
	"github.com/talenthub/talent-hub/internal/user"
)

func TestRouter(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Router Suite")
}

var _ = Describe("RegisterAllRoutes", func() {
	var routes map[string]bool

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		router := chi.NewRouter()

		handlers := rest.Handlers{
			Auth:         auth.NewHandler(nil),
			User:         user.NewHandler(nil, 0),
			Course:       course.NewHandler(nil),
			Project:      project.NewHandler(nil),
			Request:      request.NewHandler(nil),
			Certificate:  certificate.NewHandler(nil, 0),
			Notification: notification.NewHandler(nil),
			Realtime:     realtime.NewHandler(nil, nil, logger),
		}
		rest.RegisterAllRoutes(router, nil, handlers, "*", logger)

		routes = make(map[string]bool)
		err := chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
			routes[method+" "+strings.TrimSuffix(route, "/")] = true
			return nil
		})
		Expect(err).NotTo(HaveOccurred())
	})

	It("should mount staffing creation under the project-requests resource", func() {
		Expect(routes).To(HaveKey("POST /api/project-requests/{id}/request"))
		Expect(routes).NotTo(HaveKey("POST /api/projects/{id}/request"))
	})

	It("should verify certificates with PATCH", func() {
		Expect(routes).To(HaveKey("PATCH /api/certificates/{id}/verify"))
		Expect(routes).NotTo(HaveKey("POST /api/certificates/{id}/verify"))
	})

	It("should keep the approval verbs as PATCH on both request resources", func() {
		Expect(routes).To(HaveKey("PATCH /api/requests/{id}/approve"))
		Expect(routes).To(HaveKey("PATCH /api/project-requests/{id}/reject"))
	})
})
