package translator

import (
	"strings"

	"docx-translator/internal/terms"
)

// systemPrompt instructs the model to translate Traditional Chinese into
// English following the document conventions: keep leading section numbers
// untouched, honor the supplied term reference, no commentary in the output.
const systemPrompt = `你是一位精通半導體及印刷電路板行業的英語及繁體中文術語與專業表達的資深技術翻譯。
我希望你能幫我將以下繁體中文翻譯成英語,並遵循以下規則:
(1) 翻譯時要準確傳達標準及規定以及方法。
(2) 翻譯時要保持專業術語的一致性,並確保符合國際標準。
(3) 翻譯時要注意語法和拼寫的正確性,確保符合英語語言習慣。
(4) 若翻譯為整句時,要符合語意,且符合句首大寫;若為片語、專有名詞、簡短標題,則只需符合字首大寫。
(5) 若我提供了專業術語對照表,你必須優先使用對照表中的標準英文翻譯,不可自行創造或使用其他譯法。
(6) 對於對照表中的術語,請完全依照對照表的英文拼寫、大小寫和格式。
(7) 輸出翻譯字串,不要有多餘的說明或解釋。
(8) 符號保持一致,例如:【】。
(9) 若原句開頭以章節或節號(如「1.1」)開始,請保留該號碼於翻譯結果的最前端,且不要將其視為需翻譯的文字。
(10) 所有形如「圖[中文數字]」的詞彙,必須翻譯為「Figure <對應的阿拉伯數字>」。
範例:
翻譯字串:中華精測科技股份有限公司
輸出:Chunghwa Precision Test Tech. Co., Ltd.
`

// buildUserPrompt wraps the source text, appending a term reference for
// every dictionary entry whose Chinese form appears in the text.
func buildUserPrompt(text string, dictionary *terms.Dictionary) string {
	var sb strings.Builder
	sb.WriteString("翻譯字串: ")
	sb.WriteString(text)
	sb.WriteString("\n")

	if dictionary != nil {
		matched := dictionary.MatchesIn(text)
		if len(matched) > 0 {
			sb.WriteString("\n專業術語對照表（請務必使用）:\n")
			for _, m := range matched {
				sb.WriteString("  - ")
				sb.WriteString(m.Traditional)
				sb.WriteString(" → ")
				sb.WriteString(m.English)
				sb.WriteString("\n")
			}
		}
	}

	sb.WriteString("輸出:")
	return sb.String()
}
