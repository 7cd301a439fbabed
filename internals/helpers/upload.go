package helper

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"portalescolar_backend/internals/configs"
)

// Lado máximo de imagem enviada para a IA. Acima disso o Gemini só
// encarece sem melhorar a extração.
const maxAIImageSide = 1600

// DownscaleForAI decodifica a imagem, reduz para caber em maxAIImageSide
// e devolve JPEG pronto para virar base64 no payload da IA.
func DownscaleForAI(raw []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("falha ao decodificar imagem: %w", err)
	}

	b := img.Bounds()
	if b.Dx() > maxAIImageSide || b.Dy() > maxAIImageSide {
		img = imaging.Fit(img, maxAIImageSide, maxAIImageSide, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("falha ao reencodar imagem: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeWebp gera a cópia de arquivamento em webp (menor que o original).
func EncodeWebp(raw []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("falha ao decodificar imagem: %w", err)
	}
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: 80}); err != nil {
		return nil, fmt.Errorf("falha ao converter para webp: %w", err)
	}
	return buf.Bytes(), nil
}

// UploadToSupabase envia o conteúdo para o Storage do Supabase e devolve
// a URL pública.
func UploadToSupabase(bucket, filename, contentType string, body *bytes.Buffer) (string, error) {
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s",
		configs.SupabaseURL, bucket, url.PathEscape(filename))

	req, err := http.NewRequest(http.MethodPost, endpoint, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+configs.SupabaseKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload falhou: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("upload falhou (%d): %s", resp.StatusCode, string(msg))
	}

	publicURL := fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		configs.SupabaseURL, bucket, url.PathEscape(filename))
	return publicURL, nil
}

// ReadMultipartFile carrega o arquivo enviado inteiro em memória.
func ReadMultipartFile(fh *multipart.FileHeader) ([]byte, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir arquivo: %w", err)
	}
	defer src.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, src); err != nil {
		return nil, fmt.Errorf("falha ao ler arquivo: %w", err)
	}
	return buf.Bytes(), nil
}

var unsafeFilenameRe = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

func sanitizeFilename(filename string) string {
	return unsafeFilenameRe.ReplaceAllString(filename, "_")
}

func GenerateUniqueFilename(folder, originalFilename string) string {
	timestamp := time.Now().Format("20060102")
	return fmt.Sprintf("%s/%s-%s-%s", folder, timestamp, uuid.New().String(), sanitizeFilename(originalFilename))
}
