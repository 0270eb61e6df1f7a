package summarizer

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/minutes-flow/internal/storage"
)

const transcribeInstruction = "この音声ファイルを日本語で文字起こししてください。"

const minutesPrompt = `以下の会議の文字起こしテキストを元に、プロフェッショナルな議事録を作成してください。

以下のフォーマットに従って、要点を明確にまとめてください。

# 議事録

## 1. 会議の要約
（会議全体のサマリーを3〜5行で記述）

## 2. 決定事項
（会議で決定された事項を箇条書きでリストアップ）
- 決定事項1
- 決定事項2

## 3. ToDoリスト（担当者と期限）
（発生したタスクを箇条書きでリストアップし、誰がいつまでに行うかを明記）
- [ ] タスク1（担当：〇〇さん、期限：YYYY-MM-DD）
- [ ] タスク2（担当：△△さん、期限：YYYY-MM-DD）

---

# 文字起こしテキスト

%s
`

// MinutesPrompt embeds the transcript in the fixed minutes template.
func MinutesPrompt(transcript string) string {
	return fmt.Sprintf(minutesPrompt, transcript)
}

// Transcribe asks the model to transcribe the object behind ref.
func (s *implSummarizer) Transcribe(ctx context.Context, ref storage.ObjectReference, mimeType string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromURI(ref.URI, mimeType),
			genai.NewPartFromText(transcribeInstruction),
		}, genai.RoleUser),
	}

	s.logger.Debug(ctx, "Transcribing %s (%s) with %s", ref.URI, mimeType, s.model)

	text, err := s.generate(ctx, contents)
	if err != nil {
		return "", fmt.Errorf("transcribe %s: %w", ref.URI, err)
	}
	return text, nil
}

// Synthesize sends a single text prompt and returns the model's answer.
func (s *implSummarizer) Synthesize(ctx context.Context, prompt string) (string, error) {
	s.logger.Debug(ctx, "Synthesizing minutes from %d byte prompt with %s", len(prompt), s.model)

	text, err := s.generate(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("synthesize: %w", err)
	}
	return text, nil
}

func (s *implSummarizer) generate(ctx context.Context, contents []*genai.Content) (string, error) {
	result, err := s.models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var text string
		for _, part := range result.Candidates[0].Content.Parts {
			if part.Text != "" {
				text += part.Text
			}
		}
		if text != "" {
			return text, nil
		}
	}

	return "", fmt.Errorf("empty response from Gemini")
}
