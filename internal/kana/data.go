package kana

import "github.com/heartmarshall/nihongo-dataset/internal/domain"

type row struct {
	kana    string
	romaji  string
	strokes int
}

// hiraganaRows lists large forms in gojūon order, then voiced, semi-voiced
// and small forms. Small forms carry the romaji of their large counterpart;
// the gemination marker has none.
var hiraganaRows = []row{
	{"あ", "a", 3}, {"い", "i", 2}, {"う", "u", 2}, {"え", "e", 2}, {"お", "o", 3},
	{"か", "ka", 3}, {"き", "ki", 4}, {"く", "ku", 1}, {"け", "ke", 3}, {"こ", "ko", 2},
	{"さ", "sa", 3}, {"し", "shi", 1}, {"す", "su", 2}, {"せ", "se", 3}, {"そ", "so", 1},
	{"た", "ta", 4}, {"ち", "chi", 2}, {"つ", "tsu", 1}, {"て", "te", 1}, {"と", "to", 2},
	{"な", "na", 4}, {"に", "ni", 3}, {"ぬ", "nu", 2}, {"ね", "ne", 2}, {"の", "no", 1},
	{"は", "ha", 3}, {"ひ", "hi", 1}, {"ふ", "fu", 4}, {"へ", "he", 1}, {"ほ", "ho", 4},
	{"ま", "ma", 3}, {"み", "mi", 2}, {"む", "mu", 3}, {"め", "me", 2}, {"も", "mo", 3},
	{"や", "ya", 3}, {"ゆ", "yu", 2}, {"よ", "yo", 2},
	{"ら", "ra", 2}, {"り", "ri", 2}, {"る", "ru", 1}, {"れ", "re", 2}, {"ろ", "ro", 1},
	{"わ", "wa", 2}, {"ゐ", "wi", 1}, {"ゑ", "we", 1}, {"を", "wo", 3},
	{"ん", "n", 1},

	{"が", "ga", 5}, {"ぎ", "gi", 6}, {"ぐ", "gu", 3}, {"げ", "ge", 5}, {"ご", "go", 4},
	{"ざ", "za", 5}, {"じ", "ji", 3}, {"ず", "zu", 4}, {"ぜ", "ze", 5}, {"ぞ", "zo", 3},
	{"だ", "da", 6}, {"ぢ", "ji", 4}, {"づ", "zu", 3}, {"で", "de", 3}, {"ど", "do", 4},
	{"ば", "ba", 5}, {"び", "bi", 3}, {"ぶ", "bu", 6}, {"べ", "be", 3}, {"ぼ", "bo", 6},
	{"ぱ", "pa", 4}, {"ぴ", "pi", 2}, {"ぷ", "pu", 5}, {"ぺ", "pe", 2}, {"ぽ", "po", 5},

	{"ゃ", "ya", 3}, {"ゅ", "yu", 2}, {"ょ", "yo", 2}, {"っ", "", 1},
	{"ぁ", "a", 3}, {"ぃ", "i", 2}, {"ぅ", "u", 2}, {"ぇ", "e", 2}, {"ぉ", "o", 3},
}

var katakanaRows = []row{
	{"ア", "a", 2}, {"イ", "i", 2}, {"ウ", "u", 3}, {"エ", "e", 3}, {"オ", "o", 3},
	{"カ", "ka", 2}, {"キ", "ki", 3}, {"ク", "ku", 2}, {"ケ", "ke", 3}, {"コ", "ko", 2},
	{"サ", "sa", 3}, {"シ", "shi", 3}, {"ス", "su", 2}, {"セ", "se", 2}, {"ソ", "so", 2},
	{"タ", "ta", 3}, {"チ", "chi", 3}, {"ツ", "tsu", 3}, {"テ", "te", 3}, {"ト", "to", 2},
	{"ナ", "na", 2}, {"ニ", "ni", 2}, {"ヌ", "nu", 2}, {"ネ", "ne", 4}, {"ノ", "no", 1},
	{"ハ", "ha", 2}, {"ヒ", "hi", 2}, {"フ", "fu", 1}, {"ヘ", "he", 1}, {"ホ", "ho", 4},
	{"マ", "ma", 2}, {"ミ", "mi", 3}, {"ム", "mu", 2}, {"メ", "me", 2}, {"モ", "mo", 3},
	{"ヤ", "ya", 2}, {"ユ", "yu", 2}, {"ヨ", "yo", 3},
	{"ラ", "ra", 2}, {"リ", "ri", 2}, {"ル", "ru", 2}, {"レ", "re", 1}, {"ロ", "ro", 3},
	{"ワ", "wa", 2}, {"ヰ", "wi", 4}, {"ヱ", "we", 3}, {"ヲ", "wo", 3},
	{"ン", "n", 2},

	{"ガ", "ga", 4}, {"ギ", "gi", 5}, {"グ", "gu", 4}, {"ゲ", "ge", 5}, {"ゴ", "go", 4},
	{"ザ", "za", 5}, {"ジ", "ji", 5}, {"ズ", "zu", 4}, {"ゼ", "ze", 4}, {"ゾ", "zo", 4},
	{"ダ", "da", 5}, {"ヂ", "ji", 5}, {"ヅ", "zu", 5}, {"デ", "de", 5}, {"ド", "do", 4},
	{"バ", "ba", 4}, {"ビ", "bi", 4}, {"ブ", "bu", 3}, {"ベ", "be", 3}, {"ボ", "bo", 6},
	{"パ", "pa", 3}, {"ピ", "pi", 3}, {"プ", "pu", 2}, {"ペ", "pe", 2}, {"ポ", "po", 5},

	{"ャ", "ya", 2}, {"ュ", "yu", 2}, {"ョ", "yo", 3}, {"ッ", "", 3},
	{"ァ", "a", 2}, {"ィ", "i", 2}, {"ゥ", "u", 3}, {"ェ", "e", 3}, {"ォ", "o", 3},
}

// Digraph strokes are not stored: stroke totals are computed per character.
var hiraganaDigraphs = []row{
	{"きゃ", "kya", 0}, {"きゅ", "kyu", 0}, {"きょ", "kyo", 0},
	{"ぎゃ", "gya", 0}, {"ぎゅ", "gyu", 0}, {"ぎょ", "gyo", 0},
	{"しゃ", "sha", 0}, {"しゅ", "shu", 0}, {"しょ", "sho", 0},
	{"じゃ", "ja", 0}, {"じゅ", "ju", 0}, {"じょ", "jo", 0},
	{"ちゃ", "cha", 0}, {"ちゅ", "chu", 0}, {"ちょ", "cho", 0},
	{"ぢゃ", "ja", 0}, {"ぢゅ", "ju", 0}, {"ぢょ", "jo", 0},
	{"にゃ", "nya", 0}, {"にゅ", "nyu", 0}, {"にょ", "nyo", 0},
	{"ひゃ", "hya", 0}, {"ひゅ", "hyu", 0}, {"ひょ", "hyo", 0},
	{"びゃ", "bya", 0}, {"びゅ", "byu", 0}, {"びょ", "byo", 0},
	{"ぴゃ", "pya", 0}, {"ぴゅ", "pyu", 0}, {"ぴょ", "pyo", 0},
	{"みゃ", "mya", 0}, {"みゅ", "myu", 0}, {"みょ", "myo", 0},
	{"りゃ", "rya", 0}, {"りゅ", "ryu", 0}, {"りょ", "ryo", 0},
}

var katakanaDigraphs = []row{
	{"キャ", "kya", 0}, {"キュ", "kyu", 0}, {"キョ", "kyo", 0},
	{"ギャ", "gya", 0}, {"ギュ", "gyu", 0}, {"ギョ", "gyo", 0},
	{"シャ", "sha", 0}, {"シュ", "shu", 0}, {"ショ", "sho", 0},
	{"ジャ", "ja", 0}, {"ジュ", "ju", 0}, {"ジョ", "jo", 0},
	{"チャ", "cha", 0}, {"チュ", "chu", 0}, {"チョ", "cho", 0},
	{"ヂャ", "ja", 0}, {"ヂュ", "ju", 0}, {"ヂョ", "jo", 0},
	{"ニャ", "nya", 0}, {"ニュ", "nyu", 0}, {"ニョ", "nyo", 0},
	{"ヒャ", "hya", 0}, {"ヒュ", "hyu", 0}, {"ヒョ", "hyo", 0},
	{"ビャ", "bya", 0}, {"ビュ", "byu", 0}, {"ビョ", "byo", 0},
	{"ピャ", "pya", 0}, {"ピュ", "pyu", 0}, {"ピョ", "pyo", 0},
	{"ミャ", "mya", 0}, {"ミュ", "myu", 0}, {"ミョ", "myo", 0},
	{"リャ", "rya", 0}, {"リュ", "ryu", 0}, {"リョ", "ryo", 0},
}

// builtinRows returns the literal table in the CSV row shape accepted by NewTable.
func builtinRows() []Row {
	rows := make([]Row, 0, 2*(len(hiraganaRows)+len(hiraganaDigraphs)))
	add := func(src []row, script domain.Script) {
		for _, r := range src {
			rows = append(rows, Row{Kana: r.kana, Romaji: r.romaji, Script: script, Strokes: r.strokes})
		}
	}
	add(hiraganaRows, domain.ScriptHiragana)
	add(katakanaRows, domain.ScriptKatakana)
	add(hiraganaDigraphs, domain.ScriptHiragana)
	add(katakanaDigraphs, domain.ScriptKatakana)
	return rows
}
