// Package sm6375 describes the global clock controller of the Qualcomm
// SM6375: its gated clocks, the frequency tables of the root clock generators
// we program, the GPLL0 vote, block resets and power domains.
package sm6375

import "github.com/Jon-Bright/clkctl/qcom"

const (
	COMPATIBLE      = "qcom,gcc-sm6375"
	TLMM_COMPATIBLE = "qcom,sm6375-tlmm"

	GPLL0_STATUS   = 0x0
	GPLL0_ENA_VOTE = 0x79000

	GCC_QUPV3_WRAP0_S4_CMD_RCGR = 0x1f608
	GCC_SDCC1_APPS_CMD_RCGR     = 0x38028
	GCC_SDCC2_APPS_CMD_RCGR     = 0x1e00c

	SDCC1_APPS_RATE = 384000000
)

// Clock identifiers.
const (
	GCC_AHB2PHY_USB_CLK qcom.ID = iota
	GCC_CFG_NOC_USB3_PRIM_AXI_CLK
	GCC_QUPV3_WRAP0_CORE_2X_CLK
	GCC_QUPV3_WRAP0_CORE_CLK
	GCC_QUPV3_WRAP0_S0_CLK
	GCC_QUPV3_WRAP0_S1_CLK
	GCC_QUPV3_WRAP0_S2_CLK
	GCC_QUPV3_WRAP0_S3_CLK
	GCC_QUPV3_WRAP0_S4_CLK
	GCC_QUPV3_WRAP0_S5_CLK
	GCC_QUPV3_WRAP1_CORE_2X_CLK
	GCC_QUPV3_WRAP1_CORE_CLK
	GCC_QUPV3_WRAP1_S0_CLK
	GCC_QUPV3_WRAP1_S1_CLK
	GCC_QUPV3_WRAP1_S2_CLK
	GCC_QUPV3_WRAP1_S3_CLK
	GCC_QUPV3_WRAP1_S4_CLK
	GCC_QUPV3_WRAP1_S5_CLK
	GCC_QUPV3_WRAP_0_M_AHB_CLK
	GCC_QUPV3_WRAP_0_S_AHB_CLK
	GCC_QUPV3_WRAP_1_M_AHB_CLK
	GCC_QUPV3_WRAP_1_S_AHB_CLK
	GCC_SDCC1_AHB_CLK
	GCC_SDCC1_APPS_CLK
	GCC_SDCC1_ICE_CORE_CLK
	GCC_SDCC2_AHB_CLK
	GCC_SDCC2_APPS_CLK
	GCC_SYS_NOC_CPUSS_AHB_CLK
	GCC_SYS_NOC_UFS_PHY_AXI_CLK
	GCC_SYS_NOC_USB3_PRIM_AXI_CLK
	GCC_UFS_MEM_CLKREF_CLK
	GCC_UFS_PHY_AHB_CLK
	GCC_UFS_PHY_AXI_CLK
	GCC_UFS_PHY_ICE_CORE_CLK
	GCC_UFS_PHY_PHY_AUX_CLK
	GCC_UFS_PHY_RX_SYMBOL_0_CLK
	GCC_UFS_PHY_TX_SYMBOL_0_CLK
	GCC_UFS_PHY_UNIPRO_CORE_CLK
	GCC_USB30_PRIM_MASTER_CLK
	GCC_USB30_PRIM_MOCK_UTMI_CLK
	GCC_USB30_PRIM_SLEEP_CLK
	GCC_USB3_PRIM_CLKREF_CLK
	GCC_USB3_PRIM_PHY_COM_AUX_CLK
	GCC_USB3_PRIM_PHY_PIPE_CLK
	NUM_CLKS
)

// Block reset identifiers.
const (
	GCC_QUSB2PHY_PRIM_BCR qcom.ID = iota
	GCC_QUSB2PHY_SEC_BCR
	GCC_SDCC1_BCR
	GCC_SDCC2_BCR
	GCC_UFS_PHY_BCR
	GCC_USB30_PRIM_BCR
	GCC_USB_PHY_CFG_AHB2PHY_BCR
	GCC_USB3_DP_PHY_PRIM_BCR
	GCC_USB3_PHY_PRIM_SP0_BCR
	GCC_VCODEC0_BCR
	GCC_VENUS_BCR
	GCC_VIDEO_INTERFACE_BCR
	GCC_QUPV3_WRAPPER_0_BCR
	GCC_QUPV3_WRAPPER_1_BCR
	GCC_PDM_BCR
	GCC_GPU_BCR
	GCC_MMSS_BCR
	GCC_CAMSS_TFE_BCR
	GCC_CAMSS_OPE_BCR
	GCC_CAMSS_TOP_BCR
)

// Power domain identifiers.
const (
	USB30_PRIM_GDSC qcom.ID = iota
	UFS_PHY_GDSC
)

var ftblQupv3Wrap0S0 = qcom.Table{
	{Rate: 7372800, Src: qcom.SrcGPLL0Even, PreDiv: 1, M: 384, N: 15625},
	{Rate: 14745600, Src: qcom.SrcGPLL0Even, PreDiv: 1, M: 768, N: 15625},
	{Rate: 19200000, Src: qcom.SrcCXO, PreDiv: 1, M: 0, N: 0},
	{Rate: 29491200, Src: qcom.SrcGPLL0Even, PreDiv: 1, M: 1536, N: 15625},
	{Rate: 32000000, Src: qcom.SrcGPLL0Even, PreDiv: 1, M: 8, N: 75},
	{Rate: 48000000, Src: qcom.SrcGPLL0Even, PreDiv: 1, M: 4, N: 25},
	{Rate: 64000000, Src: qcom.SrcGPLL0Even, PreDiv: 1, M: 16, N: 75},
	{Rate: 75000000, Src: qcom.SrcGPLL0Even, PreDiv: 4, M: 0, N: 0},
	{Rate: 80000000, Src: qcom.SrcGPLL0Even, PreDiv: 1, M: 4, N: 15},
	{Rate: 96000000, Src: qcom.SrcGPLL0Even, PreDiv: 1, M: 8, N: 25},
	{Rate: 100000000, Src: qcom.SrcGPLL0Even, PreDiv: 3, M: 0, N: 0},
	{Rate: 102400000, Src: qcom.SrcGPLL0Even, PreDiv: 1, M: 128, N: 375},
	{Rate: 112000000, Src: qcom.SrcGPLL0Even, PreDiv: 1, M: 28, N: 75},
	{Rate: 117964800, Src: qcom.SrcGPLL0Even, PreDiv: 1, M: 6144, N: 15625},
	{Rate: 120000000, Src: qcom.SrcGPLL0Even, PreDiv: 2.5, M: 0, N: 0},
	{Rate: 128000000, Src: qcom.SrcGPLL0, PreDiv: 1, M: 16, N: 75},
}

var ftblSdcc2Apps = qcom.Table{
	{Rate: 400000, Src: qcom.SrcCXO, PreDiv: 12, M: 1, N: 4},
	{Rate: 19200000, Src: qcom.SrcCXO, PreDiv: 1, M: 0, N: 0},
	{Rate: 25000000, Src: qcom.SrcGPLL0Even, PreDiv: 12, M: 0, N: 0},
	{Rate: 50000000, Src: qcom.SrcGPLL0Even, PreDiv: 6, M: 0, N: 0},
	{Rate: 100000000, Src: qcom.SrcGPLL0Even, PreDiv: 3, M: 0, N: 0},
	{Rate: 202000000, Src: qcom.SrcGPLL0, PreDiv: 3, M: 0, N: 0},
}

var GPLL0 = &qcom.Vote{
	Name:      "gpll0",
	Status:    GPLL0_STATUS,
	StatusBit: 1 << 31,
	Reg:       GPLL0_ENA_VOTE,
	Bit:       1 << 0,
}

func gate(name string, reg uint32) qcom.Clock {
	return qcom.Clock{Name: name, Reg: reg, Enable: 1 << 0}
}

// Branches fed by the PHYs only acknowledge once the PHY is running.
func phyGate(name string, reg uint32) qcom.Clock {
	c := gate(name, reg)
	c.SkipAck = true
	return c
}

var clocks = [NUM_CLKS]qcom.Clock{
	GCC_AHB2PHY_USB_CLK:           gate("GCC_AHB2PHY_USB_CLK", 0x1d008),
	GCC_CFG_NOC_USB3_PRIM_AXI_CLK: gate("GCC_CFG_NOC_USB3_PRIM_AXI_CLK", 0x1a084),
	GCC_QUPV3_WRAP0_CORE_2X_CLK:   gate("GCC_QUPV3_WRAP0_CORE_2X_CLK", 0x1f014),
	GCC_QUPV3_WRAP0_CORE_CLK:      gate("GCC_QUPV3_WRAP0_CORE_CLK", 0x1f00c),
	GCC_QUPV3_WRAP0_S0_CLK:        gate("GCC_QUPV3_WRAP0_S0_CLK", 0x1f144),
	GCC_QUPV3_WRAP0_S1_CLK:        gate("GCC_QUPV3_WRAP0_S1_CLK", 0x1f274),
	GCC_QUPV3_WRAP0_S2_CLK:        gate("GCC_QUPV3_WRAP0_S2_CLK", 0x1f3a4),
	GCC_QUPV3_WRAP0_S3_CLK:        gate("GCC_QUPV3_WRAP0_S3_CLK", 0x1f4d4),
	GCC_QUPV3_WRAP0_S4_CLK:        gate("GCC_QUPV3_WRAP0_S4_CLK", 0x1f604),
	GCC_QUPV3_WRAP0_S5_CLK:        gate("GCC_QUPV3_WRAP0_S5_CLK", 0x1f734),
	GCC_QUPV3_WRAP1_CORE_2X_CLK:   gate("GCC_QUPV3_WRAP1_CORE_2X_CLK", 0x53014),
	GCC_QUPV3_WRAP1_CORE_CLK:      gate("GCC_QUPV3_WRAP1_CORE_CLK", 0x5300c),
	GCC_QUPV3_WRAP1_S0_CLK:        gate("GCC_QUPV3_WRAP1_S0_CLK", 0x53018),
	GCC_QUPV3_WRAP1_S1_CLK:        gate("GCC_QUPV3_WRAP1_S1_CLK", 0x53148),
	GCC_QUPV3_WRAP1_S2_CLK:        gate("GCC_QUPV3_WRAP1_S2_CLK", 0x53278),
	GCC_QUPV3_WRAP1_S3_CLK:        gate("GCC_QUPV3_WRAP1_S3_CLK", 0x533a8),
	GCC_QUPV3_WRAP1_S4_CLK:        gate("GCC_QUPV3_WRAP1_S4_CLK", 0x534d8),
	GCC_QUPV3_WRAP1_S5_CLK:        gate("GCC_QUPV3_WRAP1_S5_CLK", 0x53608),
	GCC_QUPV3_WRAP_0_M_AHB_CLK:    gate("GCC_QUPV3_WRAP_0_M_AHB_CLK", 0x1f004),
	GCC_QUPV3_WRAP_0_S_AHB_CLK:    gate("GCC_QUPV3_WRAP_0_S_AHB_CLK", 0x1f008),
	GCC_QUPV3_WRAP_1_M_AHB_CLK:    gate("GCC_QUPV3_WRAP_1_M_AHB_CLK", 0x53004),
	GCC_QUPV3_WRAP_1_S_AHB_CLK:    gate("GCC_QUPV3_WRAP_1_S_AHB_CLK", 0x53008),
	GCC_SDCC1_AHB_CLK:             gate("GCC_SDCC1_AHB_CLK", 0x38008),
	GCC_SDCC1_APPS_CLK:            gate("GCC_SDCC1_APPS_CLK", 0x38004),
	GCC_SDCC1_ICE_CORE_CLK:        gate("GCC_SDCC1_ICE_CORE_CLK", 0x3800c),
	GCC_SDCC2_AHB_CLK:             gate("GCC_SDCC2_AHB_CLK", 0x1e008),
	GCC_SDCC2_APPS_CLK:            gate("GCC_SDCC2_APPS_CLK", 0x1e004),
	GCC_SYS_NOC_CPUSS_AHB_CLK:     gate("GCC_SYS_NOC_CPUSS_AHB_CLK", 0x2b06c),
	GCC_SYS_NOC_UFS_PHY_AXI_CLK:   gate("GCC_SYS_NOC_UFS_PHY_AXI_CLK", 0x45098),
	GCC_SYS_NOC_USB3_PRIM_AXI_CLK: gate("GCC_SYS_NOC_USB3_PRIM_AXI_CLK", 0x1a080),
	GCC_UFS_MEM_CLKREF_CLK:        gate("GCC_UFS_MEM_CLKREF_CLK", 0x8c000),
	GCC_UFS_PHY_AHB_CLK:           gate("GCC_UFS_PHY_AHB_CLK", 0x45014),
	GCC_UFS_PHY_AXI_CLK:           gate("GCC_UFS_PHY_AXI_CLK", 0x45010),
	GCC_UFS_PHY_ICE_CORE_CLK:      gate("GCC_UFS_PHY_ICE_CORE_CLK", 0x45044),
	GCC_UFS_PHY_PHY_AUX_CLK:       gate("GCC_UFS_PHY_PHY_AUX_CLK", 0x45078),
	GCC_UFS_PHY_RX_SYMBOL_0_CLK:   phyGate("GCC_UFS_PHY_RX_SYMBOL_0_CLK", 0x4501c),
	GCC_UFS_PHY_TX_SYMBOL_0_CLK:   phyGate("GCC_UFS_PHY_TX_SYMBOL_0_CLK", 0x45018),
	GCC_UFS_PHY_UNIPRO_CORE_CLK:   gate("GCC_UFS_PHY_UNIPRO_CORE_CLK", 0x45040),
	GCC_USB30_PRIM_MASTER_CLK:     gate("GCC_USB30_PRIM_MASTER_CLK", 0x1a010),
	GCC_USB30_PRIM_MOCK_UTMI_CLK:  gate("GCC_USB30_PRIM_MOCK_UTMI_CLK", 0x1a018),
	GCC_USB30_PRIM_SLEEP_CLK:      gate("GCC_USB30_PRIM_SLEEP_CLK", 0x1a014),
	GCC_USB3_PRIM_CLKREF_CLK:      gate("GCC_USB3_PRIM_CLKREF_CLK", 0x8c010),
	GCC_USB3_PRIM_PHY_COM_AUX_CLK: gate("GCC_USB3_PRIM_PHY_COM_AUX_CLK", 0x1a054),
	GCC_USB3_PRIM_PHY_PIPE_CLK:    phyGate("GCC_USB3_PRIM_PHY_PIPE_CLK", 0x1a058),
}

func init() {
	// The USB controller's master clock needs the PHY's aux and reference
	// clocks running first.
	clocks[GCC_USB30_PRIM_MASTER_CLK].Requires = []qcom.ID{
		GCC_USB3_PRIM_PHY_COM_AUX_CLK,
		GCC_USB3_PRIM_CLKREF_CLK,
	}

	clocks[GCC_QUPV3_WRAP0_S4_CLK].Rate = qcom.DirectTable{
		RCG: qcom.RCG{CmdRCGR: GCC_QUPV3_WRAP0_S4_CMD_RCGR, Table: ftblQupv3Wrap0S0, MNDWidth: 16},
	}
	clocks[GCC_SDCC2_APPS_CLK].Rate = qcom.VoteThenTable{
		Vote: GPLL0,
		RCG:  qcom.RCG{CmdRCGR: GCC_SDCC2_APPS_CMD_RCGR, Table: ftblSdcc2Apps, MNDWidth: 8},
	}
	// SDCC1 is left at the rate the boot ROM programmed.
	clocks[GCC_SDCC1_APPS_CLK].Rate = qcom.Fixed{Hz: SDCC1_APPS_RATE}
}

var resets = []qcom.Reg{
	GCC_QUSB2PHY_PRIM_BCR:       {Name: "GCC_QUSB2PHY_PRIM_BCR", Off: 0x1c000},
	GCC_QUSB2PHY_SEC_BCR:        {Name: "GCC_QUSB2PHY_SEC_BCR", Off: 0x1c004},
	GCC_SDCC1_BCR:               {Name: "GCC_SDCC1_BCR", Off: 0x38000},
	GCC_SDCC2_BCR:               {Name: "GCC_SDCC2_BCR", Off: 0x1e000},
	GCC_UFS_PHY_BCR:             {Name: "GCC_UFS_PHY_BCR", Off: 0x45000},
	GCC_USB30_PRIM_BCR:          {Name: "GCC_USB30_PRIM_BCR", Off: 0x1a000},
	GCC_USB_PHY_CFG_AHB2PHY_BCR: {Name: "GCC_USB_PHY_CFG_AHB2PHY_BCR", Off: 0x1d000},
	GCC_USB3_DP_PHY_PRIM_BCR:    {Name: "GCC_USB3_DP_PHY_PRIM_BCR", Off: 0x1b020},
	GCC_USB3_PHY_PRIM_SP0_BCR:   {Name: "GCC_USB3_PHY_PRIM_SP0_BCR", Off: 0x1b000},
	GCC_VCODEC0_BCR:             {Name: "GCC_VCODEC0_BCR", Off: 0x58094},
	GCC_VENUS_BCR:               {Name: "GCC_VENUS_BCR", Off: 0x58078},
	GCC_VIDEO_INTERFACE_BCR:     {Name: "GCC_VIDEO_INTERFACE_BCR", Off: 0x6e000},
	GCC_QUPV3_WRAPPER_0_BCR:     {Name: "GCC_QUPV3_WRAPPER_0_BCR", Off: 0x1f000},
	GCC_QUPV3_WRAPPER_1_BCR:     {Name: "GCC_QUPV3_WRAPPER_1_BCR", Off: 0x53000},
	GCC_PDM_BCR:                 {Name: "GCC_PDM_BCR", Off: 0x20000},
	GCC_GPU_BCR:                 {Name: "GCC_GPU_BCR", Off: 0x36000},
	GCC_MMSS_BCR:                {Name: "GCC_MMSS_BCR", Off: 0x17000},
	GCC_CAMSS_TFE_BCR:           {Name: "GCC_CAMSS_TFE_BCR", Off: 0x52000},
	GCC_CAMSS_OPE_BCR:           {Name: "GCC_CAMSS_OPE_BCR", Off: 0x55000},
	GCC_CAMSS_TOP_BCR:           {Name: "GCC_CAMSS_TOP_BCR", Off: 0x58000},
}

var gdscs = []qcom.Reg{
	USB30_PRIM_GDSC: {Name: "USB30_PRIM_GDSC", Off: 0x1a004},
	UFS_PHY_GDSC:    {Name: "UFS_PHY_GDSC", Off: 0x45004},
}

// GCC is the SM6375 global clock controller.
var GCC = &qcom.Desc{
	Name:       "sm6375",
	Compatible: COMPATIBLE,
	Clocks:     clocks[:],
	Resets:     resets,
	GDSCs:      gdscs,
}
