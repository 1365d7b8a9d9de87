package trip

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zombor/trip-tracker/internal/extraction"
)

// multipartBody builds a multipart request body with a single file field
func multipartBody(fieldName, filename string, data []byte) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(fieldName, filename)
	Expect(err).NotTo(HaveOccurred())
	_, err = part.Write(data)
	Expect(err).NotTo(HaveOccurred())
	Expect(writer.Close()).To(Succeed())
	return body, writer.FormDataContentType()
}

var _ = Describe("Server", func() {
	var (
		db       *mockDB
		storage  *mockStorage
		pipeline *mockPipeline
		server   *Server
		auth     BasicAuth
		recorder *httptest.ResponseRecorder
	)

	BeforeEach(func() {
		db = newMockDB()
		storage = newMockStorage()
		pipeline = &mockPipeline{
			itinerary: &extraction.Itinerary{
				FlightNumber:  "6E6252",
				Airline:       "IndiGo",
				DepartureCode: "HYD",
				ArrivalCode:   "IXC",
			},
		}
		auth = BasicAuth{}
		recorder = httptest.NewRecorder()
	})

	JustBeforeEach(func() {
		service := NewServiceWithDeps(db, pipeline, storage,
			&fixedIDGenerator{id: "trip-1"},
			&fixedTimeSource{now: time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)})
		server = NewServerWithMux(service, auth, http.NewServeMux())
	})

	Describe("authentication", func() {
		BeforeEach(func() {
			auth = BasicAuth{Username: "admin", Password: "secret"}
		})

		When("no credentials are provided", func() {
			It("responds with 401 and a challenge", func() {
				req := httptest.NewRequest("GET", "/api/trips", nil)
				server.ServeHTTP(recorder, req)

				Expect(recorder.Code).To(Equal(http.StatusUnauthorized))
				Expect(recorder.Header().Get("WWW-Authenticate")).To(ContainSubstring("Trip Tracker"))
				Expect(recorder.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
			})
		})

		When("wrong credentials are provided", func() {
			It("responds with 401", func() {
				req := httptest.NewRequest("GET", "/api/trips", nil)
				req.SetBasicAuth("admin", "wrong")
				server.ServeHTTP(recorder, req)

				Expect(recorder.Code).To(Equal(http.StatusUnauthorized))
			})
		})

		When("correct credentials are provided", func() {
			It("serves the request", func() {
				req := httptest.NewRequest("GET", "/api/trips", nil)
				req.SetBasicAuth("admin", "secret")
				server.ServeHTTP(recorder, req)

				Expect(recorder.Code).To(Equal(http.StatusOK))
			})
		})

		When("no credentials are configured", func() {
			BeforeEach(func() {
				auth = BasicAuth{}
			})

			It("serves requests without auth", func() {
				req := httptest.NewRequest("GET", "/api/trips", nil)
				server.ServeHTTP(recorder, req)

				Expect(recorder.Code).To(Equal(http.StatusOK))
			})
		})
	})

	Describe("GET /api/trips", func() {
		BeforeEach(func() {
			db.trips["trip-1"] = &Trip{ID: "trip-1", Filename: "trip-1_pass.jpeg"}
		})

		It("returns the trips as JSON", func() {
			req := httptest.NewRequest("GET", "/api/trips", nil)
			server.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Header().Get("Content-Type")).To(Equal("application/json"))

			var trips []*Trip
			Expect(json.Unmarshal(recorder.Body.Bytes(), &trips)).To(Succeed())
			Expect(trips).To(HaveLen(1))
			Expect(trips[0].ID).To(Equal("trip-1"))
		})

		When("listing fails", func() {
			BeforeEach(func() {
				db.listErr = errors.New("database locked")
			})

			It("responds with 500", func() {
				req := httptest.NewRequest("GET", "/api/trips", nil)
				server.ServeHTTP(recorder, req)

				Expect(recorder.Code).To(Equal(http.StatusInternalServerError))
			})
		})
	})

	Describe("POST /api/trips", func() {
		It("processes the upload and returns the trip", func() {
			body, contentType := multipartBody("file", "pass.jpeg", []byte("fake image"))
			req := httptest.NewRequest("POST", "/api/trips", body)
			req.Header.Set("Content-Type", contentType)
			server.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusCreated))

			var trip Trip
			Expect(json.Unmarshal(recorder.Body.Bytes(), &trip)).To(Succeed())
			Expect(trip.ID).To(Equal("trip-1"))
			Expect(trip.Itinerary.FlightNumber).To(Equal("6E6252"))
			Expect(db.trips).To(HaveKey("trip-1"))
		})

		When("no file is attached", func() {
			It("responds with 400 and an error message", func() {
				body, contentType := multipartBody("wrong-field", "pass.jpeg", []byte("fake image"))
				req := httptest.NewRequest("POST", "/api/trips", body)
				req.Header.Set("Content-Type", contentType)
				server.ServeHTTP(recorder, req)

				Expect(recorder.Code).To(Equal(http.StatusBadRequest))

				var resp map[string]string
				Expect(json.Unmarshal(recorder.Body.Bytes(), &resp)).To(Succeed())
				Expect(resp["error"]).To(ContainSubstring("No file"))
			})
		})

		When("the body is not multipart", func() {
			It("responds with 400", func() {
				req := httptest.NewRequest("POST", "/api/trips", bytes.NewBufferString("not a form"))
				server.ServeHTTP(recorder, req)

				Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			})
		})

		When("extraction finds nothing", func() {
			BeforeEach(func() {
				pipeline.itinerary = nil
				pipeline.diagnostic = "no fields"
			})

			It("responds with 400 and the diagnostic", func() {
				body, contentType := multipartBody("file", "pass.jpeg", []byte("fake image"))
				req := httptest.NewRequest("POST", "/api/trips", body)
				req.Header.Set("Content-Type", contentType)
				server.ServeHTTP(recorder, req)

				Expect(recorder.Code).To(Equal(http.StatusBadRequest))

				var resp map[string]string
				Expect(json.Unmarshal(recorder.Body.Bytes(), &resp)).To(Succeed())
				Expect(resp["error"]).To(ContainSubstring("no fields"))
			})
		})

		When("the pipeline is busy", func() {
			BeforeEach(func() {
				pipeline.processErr = extraction.ErrBusy
			})

			It("responds with 400", func() {
				body, contentType := multipartBody("file", "pass.jpeg", []byte("fake image"))
				req := httptest.NewRequest("POST", "/api/trips", body)
				req.Header.Set("Content-Type", contentType)
				server.ServeHTTP(recorder, req)

				Expect(recorder.Code).To(Equal(http.StatusBadRequest))

				var resp map[string]string
				Expect(json.Unmarshal(recorder.Body.Bytes(), &resp)).To(Succeed())
				Expect(resp["error"]).To(ContainSubstring("already in progress"))
			})
		})
	})

	Describe("GET /api/trips/{id}", func() {
		BeforeEach(func() {
			db.trips["trip-1"] = &Trip{
				ID: "trip-1",
				Itinerary: extraction.Itinerary{
					FlightNumber: "6E6252",
				},
			}
		})

		It("returns the trip", func() {
			req := httptest.NewRequest("GET", "/api/trips/trip-1", nil)
			server.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			var trip Trip
			Expect(json.Unmarshal(recorder.Body.Bytes(), &trip)).To(Succeed())
			Expect(trip.Itinerary.FlightNumber).To(Equal("6E6252"))
		})

		When("the trip does not exist", func() {
			It("responds with 404", func() {
				req := httptest.NewRequest("GET", "/api/trips/missing", nil)
				server.ServeHTTP(recorder, req)

				Expect(recorder.Code).To(Equal(http.StatusNotFound))
			})
		})
	})

	Describe("GET /api/trips/{id}/image", func() {
		BeforeEach(func() {
			db.trips["trip-1"] = &Trip{
				ID:          "trip-1",
				Filename:    "trip-1_pass.jpeg",
				ContentType: "image/jpeg",
			}
			storage.files["trip-1_pass.jpeg"] = []byte("image bytes")
		})

		It("returns the image with its content type", func() {
			req := httptest.NewRequest("GET", "/api/trips/trip-1/image", nil)
			server.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Header().Get("Content-Type")).To(Equal("image/jpeg"))
			Expect(recorder.Body.Bytes()).To(Equal([]byte("image bytes")))
		})

		When("the image is missing from storage", func() {
			BeforeEach(func() {
				delete(storage.files, "trip-1_pass.jpeg")
			})

			It("responds with 404", func() {
				req := httptest.NewRequest("GET", "/api/trips/trip-1/image", nil)
				server.ServeHTTP(recorder, req)

				Expect(recorder.Code).To(Equal(http.StatusNotFound))
			})
		})
	})

	Describe("DELETE /api/trips/{id}", func() {
		BeforeEach(func() {
			db.trips["trip-1"] = &Trip{ID: "trip-1", Filename: "trip-1_pass.jpeg"}
			storage.files["trip-1_pass.jpeg"] = []byte("image bytes")
		})

		It("deletes the trip and its image", func() {
			req := httptest.NewRequest("DELETE", "/api/trips/trip-1", nil)
			server.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusNoContent))
			Expect(db.trips).NotTo(HaveKey("trip-1"))
			Expect(storage.deleted).To(ContainElement("trip-1_pass.jpeg"))
		})

		When("the trip does not exist", func() {
			It("responds with 500", func() {
				req := httptest.NewRequest("DELETE", "/api/trips/missing", nil)
				server.ServeHTTP(recorder, req)

				Expect(recorder.Code).To(Equal(http.StatusInternalServerError))
			})
		})
	})

	Describe("GET /", func() {
		It("serves the HTML interface", func() {
			req := httptest.NewRequest("GET", "/", nil)
			server.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Header().Get("Content-Type")).To(ContainSubstring("text/html"))
			Expect(recorder.Body.String()).To(ContainSubstring("<html"))
		})
	})
})
